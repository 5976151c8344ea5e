package models

import "time"

// Lead is one business contact row from the leads sheet. String fields are
// trimmed, numeric fields default to 0 and timestamps are nil when the cell
// was empty or unparseable.
type Lead struct {
	DedupeKey   string `json:"Dedupe_Key"`
	CompanyName string `json:"Company_Name"`
	Website     string `json:"Website"`
	Services    string `json:"Services"`
	Email       string `json:"Email"`
	Phone       string `json:"Phone_office"`

	State   string `json:"State"`
	City    string `json:"City"`
	Address string `json:"Address"`

	Rating  float64 `json:"Rating"`
	Reviews float64 `json:"Reviews"`

	LeadStatus   string `json:"Lead_Status"`  // raw sheet vocabulary
	EmailSent    string `json:"Email_Sent"`    // "Yes" / "No" / ""
	WhatsAppSent string `json:"WhatsApp_Sent"` // "Yes" / "No" / ""

	FollowupCount int `json:"Followup_Count"`

	LastReplyDate    *time.Time `json:"Last_Reply_Date"`
	EmailSentDate    *time.Time `json:"Email_Sent_Date"`
	WhatsAppSentDate *time.Time `json:"WhatsApp_Sent_Date"`
	LastContacted    *time.Time `json:"Last_Contacted"`
	NextFollowupAt   *time.Time `json:"Next_Followup_At"`
}

// NormalizedLead is the table view of a Lead: outreach flags are booleans and
// the status is title-cased. Original points at the source row for export.
type NormalizedLead struct {
	DedupeKey   string `json:"Dedupe_Key"`
	CompanyName string `json:"Company_Name"`
	Website     string `json:"Website"`
	Services    string `json:"Services"`
	Email       string `json:"Email"`
	Phone       string `json:"Phone_office"`

	State   string `json:"State"`
	City    string `json:"City"`
	Address string `json:"Address"`

	Rating  float64 `json:"Rating"`
	Reviews float64 `json:"Reviews"`

	LeadStatus   string `json:"Lead_Status"`
	EmailSent    bool   `json:"Email_Sent"`
	WhatsAppSent bool   `json:"WhatsApp_Sent"`

	FollowupCount int `json:"Followup_Count"`

	LastReplyDate    *time.Time `json:"Last_Reply_Date"`
	EmailSentDate    *time.Time `json:"Email_Sent_Date"`
	WhatsAppSentDate *time.Time `json:"WhatsApp_Sent_Date"`
	LastContacted    *time.Time `json:"Last_Contacted"`
	NextFollowupAt   *time.Time `json:"Next_Followup_At"`

	Original *Lead `json:"-"`
}
