package repositories

import (
	"context"
	"fmt"
	"strings"

	"booking-portal/config"
	"booking-portal/internal/module/student/models/entity"
	"booking-portal/internal/pkg/airtable"
	"booking-portal/internal/pkg/errors"

	"github.com/goccy/go-json"
)

// Column names of the billing information table.
const (
	FieldUUID         = "uuid"
	FieldNumber       = "id"
	FieldFullName     = "full_name"
	FieldNickname     = "nickname"
	FieldNameClass    = "name_class"
	FieldCompanyName  = "company_name"
	FieldTaxpayerName = "taxpayer_name"
	FieldTaxID        = "tax_id"
	FieldTaxAddress   = "tax_addres"
	FieldBillEmail    = "bill_email"
	FieldUserEmail    = "user_email"
	FieldRemark       = "remark"
	FieldIsUpdate     = "is_update"
	FieldIsEmailSent  = "is_email_sent"
)

// listFields is what the admin overview shows.
var listFields = []string{FieldNumber, FieldFullName, FieldNameClass, FieldUUID, FieldIsUpdate, FieldNickname, FieldIsEmailSent}

type Repositories interface {
	ListStudents(ctx context.Context) ([]entity.Student, error)
	ListStudentsByRef(ctx context.Context, refID string) ([]entity.Student, error)
	FindStudent(ctx context.Context, id string) (entity.Student, error)
	UpdateStudent(ctx context.Context, id string, fields map[string]interface{}) (entity.Student, error)
}

type repositories struct {
	table *airtable.Table
	view  string
}

func New(client *airtable.Client, cfg *config.AirtableConfig) Repositories {
	return &repositories{
		table: client.Table(cfg.StudentTable),
		view:  cfg.StudentView,
	}
}

func (r *repositories) ListStudents(ctx context.Context) ([]entity.Student, error) {
	records, err := r.table.List(ctx, airtable.ListOptions{
		View:   r.view,
		Fields: listFields,
		Sort:   []airtable.Sort{{Field: FieldUUID, Direction: "asc"}},
	})
	if err != nil {
		return nil, err
	}
	return toStudents(records)
}

func (r *repositories) ListStudentsByRef(ctx context.Context, refID string) ([]entity.Student, error) {
	records, err := r.table.List(ctx, airtable.ListOptions{
		FilterByFormula: fmt.Sprintf("{%s} = '%s'", FieldUUID, escapeFormula(refID)),
	})
	if err != nil {
		return nil, err
	}
	return toStudents(records)
}

func (r *repositories) FindStudent(ctx context.Context, id string) (entity.Student, error) {
	rec, err := r.table.Find(ctx, id)
	if err != nil {
		if errors.KindOf(err) == errors.KindNotFound {
			return entity.Student{}, errors.NotFound("student not found").WithDetails("no record %s", id)
		}
		return entity.Student{}, err
	}
	return toStudent(rec)
}

func (r *repositories) UpdateStudent(ctx context.Context, id string, fields map[string]interface{}) (entity.Student, error) {
	rec, err := r.table.Update(ctx, id, fields)
	if err != nil {
		if errors.KindOf(err) == errors.KindNotFound {
			return entity.Student{}, errors.NotFound("student not found").WithDetails("no record %s", id)
		}
		return entity.Student{}, err
	}
	return toStudent(rec)
}

func toStudents(records []airtable.Record) ([]entity.Student, error) {
	students := make([]entity.Student, 0, len(records))
	for _, rec := range records {
		s, err := toStudent(rec)
		if err != nil {
			return nil, err
		}
		students = append(students, s)
	}
	return students, nil
}

func toStudent(rec airtable.Record) (entity.Student, error) {
	raw, err := json.Marshal(rec.Fields)
	if err != nil {
		return entity.Student{}, errors.Wrap(errors.KindServerError, err, "error read student record")
	}

	s := entity.Student{ID: rec.ID}
	if err := json.Unmarshal(raw, &s.Fields); err != nil {
		return entity.Student{}, errors.Wrap(errors.KindServerError, err, "error read student record").
			WithDetails("record %s has unexpected field types", rec.ID)
	}
	return s, nil
}

// escapeFormula quotes a value for a single-quoted formula string.
func escapeFormula(s string) string {
	s = strings.ReplaceAll(s, `\`, `\\`)
	return strings.ReplaceAll(s, `'`, `\'`)
}
