package models

import "slices"

// Frequency is how often a donation recurs.
type Frequency string

const (
	FrequencyMonthly Frequency = "monthly"
	FrequencyOneTime Frequency = "onetime"
)

// AmountOther selects the free-form custom amount.
const AmountOther = "other"

// presetAmounts lists the amounts offered per frequency, in display order.
var presetAmounts = map[Frequency][]string{
	FrequencyMonthly: {"800", "1200", "1800"},
	FrequencyOneTime: {"2000", "5000", "10000"},
}

// IsValid reports whether f is a known frequency.
func (f Frequency) IsValid() bool {
	_, ok := presetAmounts[f]
	return ok
}

// PresetAmounts returns a copy of the preset amounts for f.
func PresetAmounts(f Frequency) []string {
	return slices.Clone(presetAmounts[f])
}

// AmountOptions returns every frequency with its presets.
func AmountOptions() map[Frequency][]string {
	out := make(map[Frequency][]string, len(presetAmounts))
	for f, amounts := range presetAmounts {
		out[f] = slices.Clone(amounts)
	}
	return out
}

// IsPreset reports whether amount is offered for f.
func IsPreset(f Frequency, amount string) bool {
	return slices.Contains(presetAmounts[f], amount)
}

// DonationTerms are the frequency/amount choices made alongside the record.
type DonationTerms struct {
	Frequency    Frequency `json:"frequency"`
	Amount       string    `json:"amount"`
	CustomAmount string    `json:"customAmount,omitempty"`
}

// DefaultTerms is the form's initial selection.
func DefaultTerms() DonationTerms {
	return DonationTerms{Frequency: FrequencyMonthly}
}

// ResolvedAmount is the amount sent upstream: the custom value when "other" is chosen.
func (t DonationTerms) ResolvedAmount() string {
	if t.Amount == AmountOther {
		return t.CustomAmount
	}
	return t.Amount
}

// TermsUpdate is a partial edit of DonationTerms.
type TermsUpdate struct {
	Frequency    *Frequency `json:"frequency,omitempty"`
	Amount       *string    `json:"amount,omitempty"`
	CustomAmount *string    `json:"customAmount,omitempty"`
}

// AsUpdate returns an update that sets every field of t.
func (t DonationTerms) AsUpdate() TermsUpdate {
	return TermsUpdate{Frequency: &t.Frequency, Amount: &t.Amount, CustomAmount: &t.CustomAmount}
}

// ApplyTo copies set fields onto t. Switching frequency clears the amount choice.
func (u TermsUpdate) ApplyTo(t *DonationTerms) {
	if u.Frequency != nil && *u.Frequency != t.Frequency {
		t.Frequency = *u.Frequency
		t.Amount = ""
		t.CustomAmount = ""
	}
	setString(&t.Amount, u.Amount)
	setString(&t.CustomAmount, u.CustomAmount)
}

// DonationPayload is the body posted to the donor storage endpoint.
type DonationPayload struct {
	FirstName     string      `json:"firstName"`
	LastName      string      `json:"lastName"`
	Email         string      `json:"email"`
	Mobile        string      `json:"mobile"`
	DOB           string      `json:"dob"`
	IDType        IDType      `json:"idType"`
	UniqueID      string      `json:"uniqueId"`
	Address       string      `json:"address"`
	Frequency     Frequency   `json:"frequency"`
	Amount        string      `json:"amount"`
	PaymentMode   PaymentMode `json:"paymentMode"`
	BankName      string      `json:"bankName"`
	IFSC          string      `json:"ifsc"`
	AccountNumber string      `json:"accountNumber"`
}

// NewDonationPayload builds the upstream body from a record and its terms.
func NewDonationPayload(r DonorRecord, t DonationTerms) DonationPayload {
	mode := r.PaymentMode
	if mode == "" {
		mode = PaymentModeEMandate
	}
	return DonationPayload{
		FirstName:     r.FirstName,
		LastName:      r.LastName,
		Email:         r.NormalizedEmail(),
		Mobile:        r.Mobile,
		DOB:           r.DOB,
		IDType:        r.IDType,
		UniqueID:      r.UniqueID,
		Address:       r.Address,
		Frequency:     t.Frequency,
		Amount:        t.ResolvedAmount(),
		PaymentMode:   mode,
		BankName:      r.BankName,
		IFSC:          r.IFSC,
		AccountNumber: r.AccountNumber,
	}
}
