package main

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"

	"github.com/jhoicas/Asistencia-api/internal/domain/entity"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/transform"
)

// seedRow una fila del CSV: email,full_name,department,employee_id,role
type seedRow struct {
	Line       int
	Email      string
	FullName   string
	Department string
	EmployeeID *string
	Role       string
}

// decodeInput envuelve r según el charset pedido. Las exportaciones de RRHH suelen venir en ISO-8859-1.
func decodeInput(r io.Reader, charset string) (io.Reader, error) {
	switch strings.ToLower(strings.ReplaceAll(charset, "_", "-")) {
	case "", "utf-8", "utf8":
		return r, nil
	case "iso-8859-1", "iso8859-1", "latin1":
		return transform.NewReader(r, charmap.ISO8859_1.NewDecoder()), nil
	default:
		return nil, fmt.Errorf("charset no soportado: %s", charset)
	}
}

// parseRows lee el CSV completo. La cabecera es opcional; filas vacías se ignoran.
func parseRows(r io.Reader) ([]seedRow, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true

	var rows []seedRow
	line := 0
	for {
		rec, err := cr.Read()
		if err == io.EOF {
			break
		}
		line++
		if err != nil {
			return nil, fmt.Errorf("línea %d: %w", line, err)
		}
		if len(rec) == 0 || (len(rec) == 1 && strings.TrimSpace(rec[0]) == "") {
			continue
		}
		if line == 1 && strings.EqualFold(strings.TrimSpace(rec[0]), "email") {
			continue
		}
		if len(rec) < 2 {
			return nil, fmt.Errorf("línea %d: se esperan al menos email y full_name", line)
		}

		row := seedRow{
			Line:     line,
			Email:    strings.ToLower(strings.TrimSpace(rec[0])),
			FullName: strings.TrimSpace(rec[1]),
			Role:     entity.RoleEmployee,
		}
		if len(rec) > 2 {
			row.Department = strings.TrimSpace(rec[2])
		}
		if len(rec) > 3 {
			if id := strings.TrimSpace(rec[3]); id != "" {
				row.EmployeeID = &id
			}
		}
		if len(rec) > 4 {
			if role := strings.ToLower(strings.TrimSpace(rec[4])); role != "" {
				row.Role = role
			}
		}
		if row.Email == "" || row.FullName == "" {
			return nil, fmt.Errorf("línea %d: email y full_name son obligatorios", line)
		}
		if !entity.ValidRole(row.Role) {
			return nil, fmt.Errorf("línea %d: rol desconocido %q", line, row.Role)
		}
		rows = append(rows, row)
	}
	return rows, nil
}
