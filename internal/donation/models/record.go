package models

import "strings"

// IDType is the identification document a donor presents.
type IDType string

const (
	IDTypeUnset          IDType = ""
	IDTypePAN            IDType = "PAN Card"
	IDTypeAadhar         IDType = "Aadhar"
	IDTypeDrivingLicense IDType = "Driving license"
	IDTypeVoterID        IDType = "VoterID"
)

// PaymentMode is the mandate type chosen for the donation.
type PaymentMode string

const (
	PaymentModeEMandate PaymentMode = "E-Mandate"
	PaymentModeUPI      PaymentMode = "UPI"
)

// IsValid reports whether the payment mode is one the form offers.
func (p PaymentMode) IsValid() bool {
	return p == PaymentModeEMandate || p == PaymentModeUPI
}

// Field names as they appear in validation results and JSON bodies.
const (
	FieldFirstName     = "firstName"
	FieldLastName      = "lastName"
	FieldEmail         = "email"
	FieldMobile        = "mobile"
	FieldDOB           = "dob"
	FieldIDType        = "idType"
	FieldUniqueID      = "uniqueId"
	FieldAddress       = "address"
	FieldBankName      = "bankName"
	FieldIFSC          = "ifsc"
	FieldAccountNumber = "accountNumber"
	FieldPaymentMode   = "paymentMode"
	FieldDeclaration   = "declaration"
	FieldFrequency     = "frequency"
	FieldAmount        = "amount"
)

// DonorRecord holds the in-progress donation form values.
type DonorRecord struct {
	FirstName     string      `json:"firstName"`
	LastName      string      `json:"lastName"`
	Email         string      `json:"email"`
	Mobile        string      `json:"mobile"`
	DOB           string      `json:"dob"`
	IDType        IDType      `json:"idType"`
	UniqueID      string      `json:"uniqueId"`
	Address       string      `json:"address"`
	BankName      string      `json:"bankName"`
	IFSC          string      `json:"ifsc"`
	AccountNumber string      `json:"accountNumber"`
	PaymentMode   PaymentMode `json:"paymentMode,omitempty"`
	Declaration   bool        `json:"declaration"`
}

// NormalizedEmail is the identity used to bind an OTP to an address.
func (r DonorRecord) NormalizedEmail() string {
	return strings.TrimSpace(r.Email)
}

// RecordUpdate is a partial edit of a DonorRecord; nil fields are left untouched.
type RecordUpdate struct {
	FirstName     *string      `json:"firstName,omitempty"`
	LastName      *string      `json:"lastName,omitempty"`
	Email         *string      `json:"email,omitempty"`
	Mobile        *string      `json:"mobile,omitempty"`
	DOB           *string      `json:"dob,omitempty"`
	IDType        *IDType      `json:"idType,omitempty"`
	UniqueID      *string      `json:"uniqueId,omitempty"`
	Address       *string      `json:"address,omitempty"`
	BankName      *string      `json:"bankName,omitempty"`
	IFSC          *string      `json:"ifsc,omitempty"`
	AccountNumber *string      `json:"accountNumber,omitempty"`
	PaymentMode   *PaymentMode `json:"paymentMode,omitempty"`
	Declaration   *bool        `json:"declaration,omitempty"`
}

// AsUpdate returns an update that sets every field of r. An empty payment mode is
// left unset so the session default applies.
func (r DonorRecord) AsUpdate() RecordUpdate {
	u := RecordUpdate{
		FirstName:     &r.FirstName,
		LastName:      &r.LastName,
		Email:         &r.Email,
		Mobile:        &r.Mobile,
		DOB:           &r.DOB,
		IDType:        &r.IDType,
		UniqueID:      &r.UniqueID,
		Address:       &r.Address,
		BankName:      &r.BankName,
		IFSC:          &r.IFSC,
		AccountNumber: &r.AccountNumber,
		Declaration:   &r.Declaration,
	}
	if r.PaymentMode != "" {
		u.PaymentMode = &r.PaymentMode
	}
	return u
}

// ApplyTo copies the set fields of u onto r.
func (u RecordUpdate) ApplyTo(r *DonorRecord) {
	setString(&r.FirstName, u.FirstName)
	setString(&r.LastName, u.LastName)
	setString(&r.Email, u.Email)
	setString(&r.Mobile, u.Mobile)
	setString(&r.DOB, u.DOB)
	setString(&r.UniqueID, u.UniqueID)
	setString(&r.Address, u.Address)
	setString(&r.BankName, u.BankName)
	setString(&r.IFSC, u.IFSC)
	setString(&r.AccountNumber, u.AccountNumber)
	if u.IDType != nil {
		r.IDType = *u.IDType
	}
	if u.PaymentMode != nil {
		r.PaymentMode = *u.PaymentMode
	}
	if u.Declaration != nil {
		r.Declaration = *u.Declaration
	}
}

// IsEmpty reports whether the update sets nothing.
func (u RecordUpdate) IsEmpty() bool {
	return u == RecordUpdate{}
}

func setString(dst *string, src *string) {
	if src != nil {
		*dst = *src
	}
}
