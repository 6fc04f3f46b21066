package model

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"
)

// Task is a single to-do entry on the desk.
type Task struct {
	ID        int64     `json:"id"`
	Text      string    `json:"text"`
	Starred   bool      `json:"starred"`
	Completed bool      `json:"completed"`
	CreatedAt time.Time `json:"createdAt"`
}

type NoteID string

const (
	NoteSpecialExpense             NoteID = "special-expense-note"
	NoteAssistantExpense           NoteID = "assistant-expense-note"
	NoteManuscriptFeePending       NoteID = "manuscript-fee-pending"
	NoteManuscriptFeeReimbursement NoteID = "manuscript-fee-reimbursement"
	NoteReviewFeeProcessed         NoteID = "review-fee-processed"
	NoteReviewFeeReimbursement     NoteID = "review-fee-reimbursement"
)

// NoteDef describes one of the fixed expense notes.
type NoteDef struct {
	ID    NoteID
	Title string
	// StorageKey is the local slot the note's text is written to on every edit.
	StorageKey  string
	Placeholder string
}

// Notes is the fixed, ordered set of known notes.
var Notes = []NoteDef{
	{ID: NoteSpecialExpense, Title: "Special expenses", StorageKey: "specialExpenseNote", Placeholder: "在这里记录特约费用..."},
	{ID: NoteAssistantExpense, Title: "Student assistant expenses", StorageKey: "assistantExpenseNote", Placeholder: "在这里记录学生助理费用..."},
	{ID: NoteManuscriptFeePending, Title: "Manuscript fees pending", StorageKey: "manuscriptFeePending"},
	{ID: NoteManuscriptFeeReimbursement, Title: "Manuscript fee reimbursement", StorageKey: "manuscriptFeeReimbursement"},
	{ID: NoteReviewFeeProcessed, Title: "Review fees processed", StorageKey: "reviewFeeProcessed"},
	{ID: NoteReviewFeeReimbursement, Title: "Review fee reimbursement", StorageKey: "reviewFeeReimbursement"},
}

func LookupNote(id NoteID) (NoteDef, bool) {
	for _, n := range Notes {
		if n.ID == id {
			return n, true
		}
	}
	return NoteDef{}, false
}

// Page-fee status types as the backend names them.
const (
	StatusAccepted = "录用"
	StatusInvoiced = "发票"
)

// PageFeeRow is one server-provided row of the page-fee checklist.
type PageFeeRow struct {
	Manuscript    string `json:"稿件编号"`
	Accepted      bool   `json:"录用"`
	Invoiced      bool   `json:"发票"`
	Remark        Text   `json:"备注"`
	WriteOffNo    Text   `json:"核销号"`
	FinanceRemark Text   `json:"财务备注"`
	TaxID         Text   `json:"税号"`
	InvoiceTitle  Text   `json:"发票抬头"`
	Email         Text   `json:"邮箱"`
}

// Status returns the checkbox value for statusType.
func (r PageFeeRow) Status(statusType string) (bool, bool) {
	switch statusType {
	case StatusAccepted:
		return r.Accepted, true
	case StatusInvoiced:
		return r.Invoiced, true
	default:
		return false, false
	}
}

// WithStatus returns a copy of r with statusType set to v.
func (r PageFeeRow) WithStatus(statusType string, v bool) PageFeeRow {
	switch statusType {
	case StatusAccepted:
		r.Accepted = v
	case StatusInvoiced:
		r.Invoiced = v
	}
	return r
}

// Text is a display string that tolerates numbers and null on the wire.
// Spreadsheet-backed endpoints return cells as whatever type they were typed in.
type Text string

func (t *Text) UnmarshalJSON(b []byte) error {
	s := strings.TrimSpace(string(b))
	switch {
	case s == "null":
		*t = ""
		return nil
	case strings.HasPrefix(s, `"`):
		var v string
		if err := json.Unmarshal(b, &v); err != nil {
			return err
		}
		*t = Text(v)
		return nil
	default:
		var n json.Number
		if err := json.Unmarshal(b, &n); err != nil {
			return fmt.Errorf("text: unsupported value %s", s)
		}
		*t = Text(n.String())
		return nil
	}
}
