// Package vcard writes employee contact cards in vCard 2.1 format.
package vcard

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/csg33k/leave-panel/internal/domain"
)

// DefaultOrg is used when no organisation is configured.
const DefaultOrg = "Authors, Inc."

// Encoder implements ports.EmployeeExporter.
type Encoder struct {
	Org string
}

func New(org string) *Encoder {
	if org == "" {
		org = DefaultOrg
	}
	return &Encoder{Org: org}
}

func (e *Encoder) Extension() string   { return "vcf" }
func (e *Encoder) ContentType() string { return "text/vcard; charset=utf-8" }

// Export writes one card per employee, separated by CRLF as vCard requires.
func (e *Encoder) Export(ctx context.Context, employees []domain.EmployeeRecord, w io.Writer) error {
	for _, emp := range employees {
		if err := ctx.Err(); err != nil {
			return err
		}
		if _, err := io.WriteString(w, e.Card(emp)); err != nil {
			return fmt.Errorf("write vcard %d: %w", emp.ID, err)
		}
	}
	return nil
}

// Card renders a single vCard.
func (e *Encoder) Card(emp domain.EmployeeRecord) string {
	var b strings.Builder
	line := func(k, v string) {
		b.WriteString(k)
		b.WriteByte(':')
		b.WriteString(escape(v))
		b.WriteString("\r\n")
	}
	b.WriteString("BEGIN:VCARD\r\n")
	b.WriteString("VERSION:2.1\r\n")
	b.WriteString("N:" + escape(emp.LastName) + ";" + escape(emp.FirstName) + "\r\n")
	line("FN", emp.FullName())
	line("ORG", e.Org)
	line("TITLE", emp.Title)
	line("TEL;WORK;VOICE", emp.Phone)
	line("EMAIL;PREF;INTERNET", emp.Email)
	b.WriteString("END:VCARD\r\n")
	return b.String()
}

// escape protects the structural characters of a property value.
func escape(s string) string {
	r := strings.NewReplacer(`\`, `\\`, ";", `\;`, "\r\n", " ", "\n", " ", "\r", " ")
	return r.Replace(s)
}
