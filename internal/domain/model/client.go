package model

import "encoding/json"

// ClientListItem is the summary row returned by the client listing endpoint.
// The backend sends the phone number as a JSON number here and as a string on
// the detail endpoint.
type ClientListItem struct {
	Client      string      `json:"Client"`
	Responsable string      `json:"Nom Responsable"`
	Address1    string      `json:"Direcció 1"`
	Address2    string      `json:"Direcció 2"`
	Email       string      `json:"Email"`
	Phone       json.Number `json:"Telèfon"`
}

// Client is the full client record, including direct debit mandate data.
type Client struct {
	Client          string `json:"Client"`
	Responsable     string `json:"Nom Responsable"`
	Address1        string `json:"Direcció 1"`
	Address2        string `json:"Direcció 2"`
	Email           string `json:"Email"`
	Phone           string `json:"Telèfon"`
	IDType          string `json:"ID Type"`
	IDValue         string `json:"ID Value"`
	ClientReference string `json:"Referència Client"`
	MandateRef      string `json:"Referència Mandat"`
	MandateSignedAt string `json:"Data Firma Mandat"`
	IBAN            string `json:"IBAN"`
}

// NewClientPayload is the body sent when creating or editing a client.
type NewClientPayload struct {
	Client          string `json:"Client"`
	Responsable     string `json:"Nom Responsable"`
	Address1        string `json:"Direcció 1"`
	Address2        string `json:"Direcció 2"`
	Email           string `json:"Email"`
	Phone           string `json:"Telèfon"`
	IDType          string `json:"ID Type"`
	IDValue         string `json:"ID Value"`
	ClientReference string `json:"Referència Client"`
	MandateRef      string `json:"Referència Mandat"`
	MandateSignedAt string `json:"Data Firma Mandat"`
	IBAN            string `json:"IBAN"`
}

// ClientReference is the compact client representation embedded in remittance data.
type ClientReference struct {
	ID       int64  `json:"id"`
	Name     string `json:"name"`
	IsActive bool   `json:"isActive"`
}
