package entity

type EmailStatus string

const (
	EmailPending EmailStatus = "pending"
	EmailSuccess EmailStatus = "success"
	EmailFail    EmailStatus = "fail"
)

// Student is one row of the billing information table. Json names are the
// Airtable column names.
type Student struct {
	ID     string `json:"id"`
	Fields Fields `json:"fields"`
}

type Fields struct {
	Number       int         `json:"id,omitempty"`
	UUID         string      `json:"uuid,omitempty"`
	FullName     string      `json:"full_name,omitempty"`
	Nickname     string      `json:"nickname,omitempty"`
	NameClass    string      `json:"name_class,omitempty"`
	Date         string      `json:"date,omitempty"`
	CompanyName  string      `json:"company_name,omitempty"`
	TaxpayerName string      `json:"taxpayer_name,omitempty"`
	TaxID        string      `json:"tax_id,omitempty"`
	TaxAddress   string      `json:"tax_addres,omitempty"`
	BillEmail    string      `json:"bill_email,omitempty"`
	UserEmail    string      `json:"user_email,omitempty"`
	Remark       string      `json:"remark,omitempty"`
	IsUpdate     bool        `json:"is_update,omitempty"`
	IsEmailSent  EmailStatus `json:"is_email_sent,omitempty"`
}
