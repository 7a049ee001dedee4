package entity

// Counter is a named transactional sequence row. Values are advanced with a
// single UPDATE ... RETURNING inside the caller's transaction, never by
// reading the current value and adding one.
type Counter struct {
	Name  string `gorm:"size:50;primaryKey"`
	Value int64  `gorm:"not null;default:0"`
}

// Counter names used by the transaction core
const (
	CounterHoldID    = "hold_id"
	CounterInvoiceNo = "invoice_no"
)

// TableName returns the table name for the Counter model
func (Counter) TableName() string {
	return "counters"
}
