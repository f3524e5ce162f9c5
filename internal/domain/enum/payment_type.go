package enum

// PaymentType is the label recorded against a sale. Payments are not
// processed here; the label is for bookkeeping only.
type PaymentType string

const (
	PaymentTypeMpesa PaymentType = "Mpesa"
	PaymentTypeCash  PaymentType = "Cash"
)

// IsValid reports whether the payment type is one the register accepts.
func (p PaymentType) IsValid() bool {
	return p == PaymentTypeMpesa || p == PaymentTypeCash
}

func (p PaymentType) String() string {
	return string(p)
}
