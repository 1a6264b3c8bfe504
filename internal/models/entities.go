package models

// MonetaryAmount is a currency amount normalized to the smallest unit (rupees).
type MonetaryAmount struct {
	ValueInBaseUnits int64 `json:"valueInBaseUnits"`
}

// Duration is a time span normalized to days.
type Duration struct {
	ValueInDays int `json:"valueInDays"`
}

// LocationPhrase is the free-text fragment following a locative preposition.
type LocationPhrase struct {
	Text string `json:"text"`
}

// Entities holds everything the extractor recognized in one user turn.
// Absent categories stay nil; extraction never fails.
type Entities struct {
	Amount   *MonetaryAmount `json:"amount,omitempty"`
	Duration *Duration       `json:"duration,omitempty"`
	Location *LocationPhrase `json:"location,omitempty"`
}
