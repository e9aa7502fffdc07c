package service

import (
	"fmt"
	"strings"

	"foodcart-service/internal/models"

	"github.com/google/uuid"
	"github.com/nyaruka/phonenumbers"
	"github.com/shopspring/decimal"
)

// Номера без кода страны считаются российскими
const defaultPhoneRegion = "RU"

// normalizePhone validates the number against the numbering plan and
// returns it in E.164.
func normalizePhone(raw string) (string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", fmt.Errorf("%w: phonenumber", ErrFieldRequired)
	}
	num, err := phonenumbers.Parse(raw, defaultPhoneRegion)
	if err != nil || !phonenumbers.IsValidNumber(num) {
		return "", fmt.Errorf("%w: %q", ErrInvalidPhone, raw)
	}
	return phonenumbers.Format(num, phonenumbers.E164), nil
}

// MaxPrice is the largest value a numeric(8,2) column holds.
var MaxPrice = decimal.RequireFromString("999999.99")

// checkPrice rejects prices the products.price column would reject or silently round.
func checkPrice(price decimal.Decimal) error {
	switch {
	case price.IsNegative():
		return ErrNegativePrice
	case !price.Equal(price.Round(2)):
		return fmt.Errorf("%w: %s has more than 2 decimal places", ErrInvalidPrice, price)
	case price.GreaterThan(MaxPrice):
		return fmt.Errorf("%w: %s exceeds %s", ErrInvalidPrice, price, MaxPrice)
	}
	return nil
}

func required(field, value string) (string, error) {
	v := strings.TrimSpace(value)
	if v == "" {
		return "", fmt.Errorf("%w: %s", ErrFieldRequired, field)
	}
	return v, nil
}

// MaxLineQuantity caps the quantity of a single product in one order.
const MaxLineQuantity = 32767

// mergeItems sums quantities of repeated products, keeping first-seen order.
// The merged quantity must stay within 1..MaxLineQuantity.
func mergeItems(items []CreateOrderItem) ([]CreateOrderItem, error) {
	if len(items) == 0 {
		return nil, ErrEmptyItems
	}
	index := make(map[uuid.UUID]int, len(items))
	sums := make([]int64, 0, len(items))
	out := make([]CreateOrderItem, 0, len(items))
	for _, it := range items {
		if it.Quantity <= 0 {
			return nil, fmt.Errorf("%w: product %s", ErrQuantityInvalid, it.ProductID)
		}
		i, ok := index[it.ProductID]
		if !ok {
			i = len(out)
			index[it.ProductID] = i
			out = append(out, it)
			sums = append(sums, 0)
		}
		sums[i] += int64(it.Quantity)
		if sums[i] > MaxLineQuantity {
			return nil, fmt.Errorf("%w: product %s exceeds %d", ErrQuantityInvalid, it.ProductID, MaxLineQuantity)
		}
		out[i].Quantity = int32(sums[i])
	}
	return out, nil
}

func validateCreateOrder(in CreateOrderInput) (CreateOrderInput, error) {
	var err error
	if in.FirstName, err = required("firstname", in.FirstName); err != nil {
		return in, err
	}
	if in.LastName, err = required("lastname", in.LastName); err != nil {
		return in, err
	}
	if in.Address, err = required("address", in.Address); err != nil {
		return in, err
	}
	if in.PhoneNumber, err = normalizePhone(in.PhoneNumber); err != nil {
		return in, err
	}
	if in.Payment == "" {
		in.Payment = models.PaymentCash
	}
	if !in.Payment.Valid() {
		return in, fmt.Errorf("%w: %q", ErrInvalidPayment, in.Payment)
	}
	if in.Items, err = mergeItems(in.Items); err != nil {
		return in, err
	}
	return in, nil
}
