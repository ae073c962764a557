package model

// Document categories.
const (
	DocGeneralLedger = "GENERAL_LEDGER"
	DocBankStatement = "BANK_STATEMENT"
	DocTaxReturn     = "TAX_RETURN"
	DocPayroll       = "PAYROLL"
	DocOther         = "OTHER"
)

// Document is an uploaded client document or engagement workpaper. File is a
// server-side reference (URL); the file content itself is never held locally.
type Document struct {
	ID             int    `json:"id"`
	Client         int    `json:"client"`
	Engagement     *int   `json:"engagement,omitempty"`
	Description    string `json:"description"`
	Category       string `json:"category"`
	File           string `json:"file,omitempty"`
	IsVerified     bool   `json:"is_verified"`
	UploadedByName string `json:"uploaded_by_name,omitempty"`
	UploadedAt     string `json:"uploaded_at,omitempty"`
}
