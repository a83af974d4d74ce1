// 文件路径: internal/service/contact.go
// 模块说明: 经销商 / 供应商通讯录。
package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/text/language"

	"github.com/creamcroissant/trailerboard/internal/repository"
	"github.com/creamcroissant/trailerboard/internal/tablesort"
)

// ContactService exposes the dealer and vendor address book.
type ContactService interface {
	List(ctx context.Context, input ContactListInput) ([]ContactView, error)
	Get(ctx context.Context, id string) (*ContactView, error)
	Create(ctx context.Context, input ContactSaveInput) (*ContactView, error)
	Update(ctx context.Context, id string, input ContactSaveInput) (*ContactView, error)
}

// ContactListInput filters by kind and orders by one column.
type ContactListInput struct {
	Kind string
	Sort tablesort.State
}

// ContactView mirrors the payload returned to clients.
type ContactView struct {
	ID        string `json:"id"`
	Kind      string `json:"kind"`
	Name      string `json:"name"`
	Company   string `json:"company"`
	Email     string `json:"email"`
	Phone     string `json:"phone"`
	City      string `json:"city"`
	State     string `json:"state"`
	Notes     string `json:"notes"`
	CreatedAt int64  `json:"created_at"`
	UpdatedAt int64  `json:"updated_at"`
}

// ContactSaveInput captures fields accepted by create and update.
type ContactSaveInput struct {
	Kind    string `json:"kind"`
	Name    string `json:"name"`
	Company string `json:"company"`
	Email   string `json:"email"`
	Phone   string `json:"phone"`
	City    string `json:"city"`
	State   string `json:"state"`
	Notes   string `json:"notes"`
}

type contactService struct {
	contacts repository.ContactRepository
	sorter   *tablesort.Sorter[ContactView]
	now      func() time.Time
	newID    func() string
}

// NewContactService wires repository-backed contact operations.
func NewContactService(contacts repository.ContactRepository, locale language.Tag) ContactService {
	return &contactService{
		contacts: contacts,
		sorter: tablesort.NewSorter(locale, tablesort.Columns[ContactView]{
			"name":    func(v ContactView) any { return v.Name },
			"company": func(v ContactView) any { return v.Company },
			"kind":    func(v ContactView) any { return v.Kind },
			"email":   func(v ContactView) any { return v.Email },
			"city":    func(v ContactView) any { return v.City },
			"state":   func(v ContactView) any { return v.State },
		}),
		now:   time.Now,
		newID: uuid.NewString,
	}
}

func (s *contactService) List(ctx context.Context, input ContactListInput) ([]ContactView, error) {
	if s == nil || s.contacts == nil {
		return nil, fmt.Errorf("contact service not configured / 通讯录服务未配置")
	}
	kind, err := parseContactKind(input.Kind, true)
	if err != nil {
		return nil, err
	}
	records, err := s.contacts.List(ctx, repository.ContactFilter{Kind: kind})
	if err != nil {
		return nil, err
	}
	views := make([]ContactView, 0, len(records))
	for _, record := range records {
		views = append(views, mapContact(record))
	}
	return s.sorter.Apply(views, input.Sort), nil
}

func (s *contactService) Get(ctx context.Context, id string) (*ContactView, error) {
	if s == nil || s.contacts == nil {
		return nil, fmt.Errorf("contact service not configured / 通讯录服务未配置")
	}
	id = strings.TrimSpace(id)
	if id == "" {
		return nil, ErrNotFound
	}
	record, err := s.contacts.FindByID(ctx, id)
	if err != nil {
		return nil, mapRepoError(err)
	}
	view := mapContact(record)
	return &view, nil
}

func (s *contactService) Create(ctx context.Context, input ContactSaveInput) (*ContactView, error) {
	if s == nil || s.contacts == nil {
		return nil, fmt.Errorf("contact service not configured / 通讯录服务未配置")
	}
	contact := &repository.Contact{ID: s.newID()}
	if err := applyContactInput(contact, input); err != nil {
		return nil, err
	}
	now := s.now().Unix()
	contact.CreatedAt = now
	contact.UpdatedAt = now
	if err := s.contacts.Create(ctx, contact); err != nil {
		return nil, mapRepoError(err)
	}
	view := mapContact(contact)
	return &view, nil
}

func (s *contactService) Update(ctx context.Context, id string, input ContactSaveInput) (*ContactView, error) {
	if s == nil || s.contacts == nil {
		return nil, fmt.Errorf("contact service not configured / 通讯录服务未配置")
	}
	contact, err := s.contacts.FindByID(ctx, strings.TrimSpace(id))
	if err != nil {
		return nil, mapRepoError(err)
	}
	if err := applyContactInput(contact, input); err != nil {
		return nil, err
	}
	contact.UpdatedAt = s.now().Unix()
	if err := s.contacts.Update(ctx, contact); err != nil {
		return nil, mapRepoError(err)
	}
	view := mapContact(contact)
	return &view, nil
}

func parseContactKind(raw string, allowEmpty bool) (repository.ContactKind, error) {
	kind := repository.ContactKind(strings.ToLower(strings.TrimSpace(raw)))
	if kind == "" && allowEmpty {
		return "", nil
	}
	if !kind.Valid() {
		return "", fmt.Errorf("%w: kind must be dealer or vendor / 类型必须为 dealer 或 vendor", ErrInvalidInput)
	}
	return kind, nil
}

func applyContactInput(contact *repository.Contact, input ContactSaveInput) error {
	kind, err := parseContactKind(input.Kind, false)
	if err != nil {
		return err
	}
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return fmt.Errorf("%w: name is required / 名称不能为空", ErrInvalidInput)
	}
	email := strings.ToLower(strings.TrimSpace(input.Email))
	if email != "" && !strings.Contains(email, "@") {
		return fmt.Errorf("%w: invalid email / 邮箱无效", ErrInvalidInput)
	}
	contact.Kind = kind
	contact.Name = name
	contact.Company = strings.TrimSpace(input.Company)
	contact.Email = email
	contact.Phone = strings.TrimSpace(input.Phone)
	contact.City = strings.TrimSpace(input.City)
	contact.State = strings.ToUpper(strings.TrimSpace(input.State))
	contact.Notes = sanitizeNotes(input.Notes)
	return nil
}

func mapContact(contact *repository.Contact) ContactView {
	return ContactView{
		ID:        contact.ID,
		Kind:      string(contact.Kind),
		Name:      contact.Name,
		Company:   contact.Company,
		Email:     contact.Email,
		Phone:     contact.Phone,
		City:      contact.City,
		State:     contact.State,
		Notes:     contact.Notes,
		CreatedAt: contact.CreatedAt,
		UpdatedAt: contact.UpdatedAt,
	}
}
