package utils

import (
	"crypto/rand"
	"fmt"
	"math"
	"math/big"
	"time"
)

const orderNumberAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

// GenerateCode returns a random string of uppercase letters and digits.
func GenerateCode(length int) (string, error) {
	code := make([]byte, length)
	for i := range code {
		n, err := rand.Int(rand.Reader, big.NewInt(int64(len(orderNumberAlphabet))))
		if err != nil {
			return "", err
		}
		code[i] = orderNumberAlphabet[n.Int64()]
	}
	return string(code), nil
}

// GenerateOrderNumber builds a human-readable order number like
// TB-202601021504-7QX9. The suffix can collide within a minute, so callers
// retry on a unique-index violation.
func GenerateOrderNumber(prefix string) (string, error) {
	suffix, err := GenerateCode(4)
	if err != nil {
		return "", err
	}
	timestamp := time.Now().Format("200601021504")
	return fmt.Sprintf("%s-%s-%s", prefix, timestamp, suffix), nil
}

func Round2(v float64) float64 {
	return math.Round(v*100) / 100
}

type OrderTotals struct {
	Subtotal    float64
	DeliveryFee float64
	Tax         float64
	Total       float64
}

// CalculateOrderTotals derives tax and total from a raw item subtotal. Tax
// and total are each rounded to two decimal places, as is the stored
// subtotal.
func CalculateOrderTotals(subtotal, deliveryFee, taxRate float64) OrderTotals {
	tax := Round2(subtotal * taxRate)
	return OrderTotals{
		Subtotal:    Round2(subtotal),
		DeliveryFee: deliveryFee,
		Tax:         tax,
		Total:       Round2(subtotal + deliveryFee + tax),
	}
}
