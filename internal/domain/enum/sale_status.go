package enum

// SaleStatus tracks the lifecycle of a committed sale.
type SaleStatus string

const (
	SaleStatusCompleted SaleStatus = "completed"
	SaleStatusPending   SaleStatus = "pending"
	SaleStatusCancelled SaleStatus = "cancelled"
)

func (s SaleStatus) IsValid() bool {
	switch s {
	case SaleStatusCompleted, SaleStatusPending, SaleStatusCancelled:
		return true
	}
	return false
}

func (s SaleStatus) String() string {
	return string(s)
}
