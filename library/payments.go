package library

import "fmt"

// PaymentProcessor is a placeholder. No payment gateway is integrated and
// fines are never charged; Process reports success unconditionally.
type PaymentProcessor struct{}

// Process pretends to charge amount to the user's account.
func (PaymentProcessor) Process(userID string, amount float64) bool {
	fmt.Printf("Processing payment of $%.2f for user %s\n", amount, userID)
	return true
}
