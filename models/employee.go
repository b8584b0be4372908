// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

// Spreadsheet column headers, in registration form order.
const (
	ColumnName    = "Nome"
	ColumnSurname = "Sobrenome"
	ColumnEmail   = "Email"
	ColumnRole    = "Cargo"
	ColumnCompany = "Empresa"
	ColumnAddress = "Endereço"
	ColumnPhone   = "Telefone"
)

// Employee is one spreadsheet row to be registered on the dashboard.
//
// Name, Email and Role are mandatory; a row missing any of them is skipped
// and counted as a failure. The remaining fields are typed as found, empty
// when the cell is blank.
type Employee struct {
	// Row is the 1-based spreadsheet row the record was read from, header
	// row included.
	Row int `json:"row"`

	Name    string `json:"nome" validate:"required"`
	Surname string `json:"sobrenome"`
	Email   string `json:"email" validate:"required"`
	Role    string `json:"cargo" validate:"required"`
	Company string `json:"empresa"`
	Address string `json:"endereco"`
	Phone   string `json:"telefone"`
}

// FullName joins name and surname for log messages.
func (e Employee) FullName() string {
	if e.Surname == "" {
		return e.Name
	}
	return e.Name + " " + e.Surname
}
