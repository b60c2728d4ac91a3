package model

import "time"

// Attachment is one binary attachment on an inbound item.
type Attachment struct {
	Filename string `json:"filename"`
	Content  []byte `json:"content"`
}

// InboundItem is one item yielded by the inbound source. ID is the durable
// message identity used for idempotent processing; the source may redeliver
// the same item and the ledger absorbs the duplicates.
type InboundItem struct {
	ID          string       `json:"id"`
	Subject     string       `json:"subject"`
	Sender      string       `json:"sender"`
	Date        string       `json:"date"`
	Body        string       `json:"body"`
	HTMLBody    string       `json:"html_body,omitempty"`
	Attachments []Attachment `json:"attachments"`
}

// ItemState tracks an item through the intake state machine.
type ItemState string

const (
	StateReceived       ItemState = "RECEIVED"
	StateFilteredOut    ItemState = "FILTERED_OUT"
	StateAccepted       ItemState = "ACCEPTED"
	StateExtracting     ItemState = "EXTRACTING"
	StateAnalyzing      ItemState = "ANALYZING"
	StateReporting      ItemState = "REPORTING"
	StateDelivered      ItemState = "DELIVERED"
	StateDeliveryFailed ItemState = "DELIVERY_FAILED"
	StateMarked         ItemState = "MARKED"
)

// Disposition is the terminal outcome recorded in the processed ledger.
type Disposition string

const (
	DispositionFiltered       Disposition = "filtered"
	DispositionDelivered      Disposition = "delivered"
	DispositionDeliveryFailed Disposition = "delivery_failed"
	DispositionErrored        Disposition = "errored"
)

// ProcessingRecord is one row of the append-only processed ledger.
type ProcessingRecord struct {
	ItemID      string      `db:"item_id" json:"item_id"`
	Disposition Disposition `db:"disposition" json:"disposition"`
	ProcessedAt time.Time   `db:"processed_at" json:"processed_at"`
}
