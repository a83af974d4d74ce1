// 文件路径: internal/repository/sqlite/contact.go
package sqlite

import (
	"context"
	"database/sql"
	"errors"

	"github.com/creamcroissant/trailerboard/internal/repository"
)

const contactColumns = `id, kind, name, company, email, phone, city, state, notes, created_at, updated_at`

type contactRepo struct {
	db *sql.DB
}

func (r *contactRepo) List(ctx context.Context, filter repository.ContactFilter) ([]*repository.Contact, error) {
	query := `SELECT ` + contactColumns + ` FROM contacts`
	var args []any
	if filter.Kind != "" {
		query += " WHERE kind = ?"
		args = append(args, string(filter.Kind))
	}
	query += " ORDER BY created_at ASC, id ASC"

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var contacts []*repository.Contact
	for rows.Next() {
		contact, err := scanContact(rows)
		if err != nil {
			return nil, err
		}
		contacts = append(contacts, contact)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return contacts, nil
}

func (r *contactRepo) FindByID(ctx context.Context, id string) (*repository.Contact, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+contactColumns+` FROM contacts WHERE id = ?`, id)
	contact, err := scanContact(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return contact, nil
}

func (r *contactRepo) Create(ctx context.Context, contact *repository.Contact) error {
	if contact == nil {
		return errors.New("contact is nil")
	}
	const stmt = `INSERT INTO contacts(id, kind, name, company, email, phone, city, state, notes, created_at, updated_at)
                  VALUES(?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, stmt,
		contact.ID,
		string(contact.Kind),
		contact.Name,
		contact.Company,
		contact.Email,
		contact.Phone,
		contact.City,
		contact.State,
		contact.Notes,
		contact.CreatedAt,
		contact.UpdatedAt,
	)
	if isUniqueViolation(err) {
		return repository.ErrConflict
	}
	return err
}

func (r *contactRepo) Update(ctx context.Context, contact *repository.Contact) error {
	if contact == nil {
		return errors.New("contact is nil")
	}
	const stmt = `UPDATE contacts
                  SET kind = ?, name = ?, company = ?, email = ?, phone = ?, city = ?, state = ?, notes = ?, updated_at = ?
                  WHERE id = ?`
	res, err := r.db.ExecContext(ctx, stmt,
		string(contact.Kind),
		contact.Name,
		contact.Company,
		contact.Email,
		contact.Phone,
		contact.City,
		contact.State,
		contact.Notes,
		contact.UpdatedAt,
		contact.ID,
	)
	if err != nil {
		return err
	}
	if affected, err := res.RowsAffected(); err == nil && affected == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func scanContact(scanner rowScanner) (*repository.Contact, error) {
	var (
		contact repository.Contact
		kind    string
	)
	if err := scanner.Scan(
		&contact.ID,
		&kind,
		&contact.Name,
		&contact.Company,
		&contact.Email,
		&contact.Phone,
		&contact.City,
		&contact.State,
		&contact.Notes,
		&contact.CreatedAt,
		&contact.UpdatedAt,
	); err != nil {
		return nil, err
	}
	contact.Kind = repository.ContactKind(kind)
	return &contact, nil
}
