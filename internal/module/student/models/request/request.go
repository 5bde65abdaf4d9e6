package request

// UpdateStudent is the self-service form. Nil fields are left untouched.
type UpdateStudent struct {
	Nickname     *string `json:"nickname" form:"nickname"`
	UserEmail    *string `json:"user_email" form:"user_email" validate:"omitempty,email"`
	CompanyName  *string `json:"company_name" form:"company_name"`
	TaxpayerName *string `json:"taxpayer_name" form:"taxpayer_name"`
	TaxID        *string `json:"tax_id" form:"tax_id"`
	TaxAddress   *string `json:"tax_addres" form:"tax_addres"`
	BillEmail    *string `json:"bill_email" form:"bill_email" validate:"omitempty,email"`
	Remark       *string `json:"remark" form:"remark"`
}

// SendEmail is the multipart form posted by the admin. The attachment is
// read separately from the "attachment" file part.
type SendEmail struct {
	BillEmail   string `form:"bill_email" validate:"required,email"`
	FullName    string `form:"full_name"`
	NameClass   string `form:"name_class"`
	CompanyName string `form:"company_name"`
	TaxID       string `form:"tax_id"`
	TaxAddress  string `form:"tax_addres"`

	Subject   string `form:"email_subject"`
	Header    string `form:"email_header"`
	Recipient string `form:"email_recipient"`
	Bold      string `form:"email_bold_text"`
	Detail    string `form:"email_detail"`
	Footer    string `form:"email_footer"`
}

// ReceiptEmailTask is the send_receipt_email task payload.
type ReceiptEmailTask struct {
	RecordID       string `json:"record_id" validate:"required"`
	To             string `json:"to" validate:"required,email"`
	Subject        string `json:"subject"`
	Header         string `json:"header,omitempty"`
	Recipient      string `json:"recipient,omitempty"`
	Bold           string `json:"bold,omitempty"`
	Detail         string `json:"detail,omitempty"`
	Footer         string `json:"footer,omitempty"`
	AttachmentName string `json:"attachment_name,omitempty"`
	Attachment     []byte `json:"attachment,omitempty"`
}
