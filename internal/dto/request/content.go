package request

import (
	"strings"

	"dropship-store/internal/data/entity"
)

// Applier copies request fields onto an entity. Create requests set every
// field; update requests only the ones present.
type Applier[P any] interface {
	Apply(doc P)
}

func set(dst *string, src *string) {
	if src != nil {
		*dst = strings.TrimSpace(*src)
	}
}

// ==================== CATEGORY ====================

type CategoryRequest struct {
	Name string `json:"name" validate:"required,min=1,max=100"`
}

func (r CategoryRequest) Apply(c *entity.Category) {
	c.Name = strings.TrimSpace(r.Name)
}

type CategoryUpdateRequest struct {
	Name *string `json:"name,omitempty" validate:"omitempty,min=1,max=100"`
}

func (r CategoryUpdateRequest) Apply(c *entity.Category) {
	set(&c.Name, r.Name)
}

// ==================== FEATURE ====================

type FeatureRequest struct {
	Name        string `json:"name" validate:"required,min=1,max=150"`
	Description string `json:"description" validate:"max=5000"`
}

func (r FeatureRequest) Apply(f *entity.Feature) {
	f.Name = strings.TrimSpace(r.Name)
	f.Description = r.Description
}

type FeatureUpdateRequest struct {
	Name        *string `json:"name,omitempty" validate:"omitempty,min=1,max=150"`
	Description *string `json:"description,omitempty" validate:"omitempty,max=5000"`
}

func (r FeatureUpdateRequest) Apply(f *entity.Feature) {
	set(&f.Name, r.Name)
	set(&f.Description, r.Description)
}

// ==================== INTEGRATION ====================

type IntegrationRequest struct {
	Name        string `json:"name" validate:"required,min=1,max=150"`
	Description string `json:"description" validate:"max=5000"`
	Link        string `json:"link,omitempty" validate:"omitempty,url"`
}

func (r IntegrationRequest) Apply(i *entity.Integration) {
	i.Name = strings.TrimSpace(r.Name)
	i.Description = r.Description
	i.Link = r.Link
}

type IntegrationUpdateRequest struct {
	Name        *string `json:"name,omitempty" validate:"omitempty,min=1,max=150"`
	Description *string `json:"description,omitempty" validate:"omitempty,max=5000"`
	Link        *string `json:"link,omitempty" validate:"omitempty,url"`
}

func (r IntegrationUpdateRequest) Apply(i *entity.Integration) {
	set(&i.Name, r.Name)
	set(&i.Description, r.Description)
	set(&i.Link, r.Link)
}

// ==================== FAQ ====================

type FAQRequest struct {
	Question string `json:"question" validate:"required,min=3,max=300"`
	Answer   string `json:"answer" validate:"required,max=5000"`
}

func (r FAQRequest) Apply(f *entity.FAQ) {
	f.Question = strings.TrimSpace(r.Question)
	f.Answer = r.Answer
}

type FAQUpdateRequest struct {
	Question *string `json:"question,omitempty" validate:"omitempty,min=3,max=300"`
	Answer   *string `json:"answer,omitempty" validate:"omitempty,max=5000"`
}

func (r FAQUpdateRequest) Apply(f *entity.FAQ) {
	set(&f.Question, r.Question)
	set(&f.Answer, r.Answer)
}

// ==================== JOB ====================

type JobRequest struct {
	Name           string `json:"name" validate:"required,min=1,max=150"`
	Description    string `json:"description" validate:"required,max=10000"`
	Location       string `json:"location,omitempty" validate:"max=150"`
	EmploymentType string `json:"employmentType,omitempty" validate:"omitempty,oneof=full-time part-time contract internship remote"`
}

func (r JobRequest) Apply(j *entity.Job) {
	j.Name = strings.TrimSpace(r.Name)
	j.Description = r.Description
	j.Location = r.Location
	j.EmploymentType = r.EmploymentType
}

type JobUpdateRequest struct {
	Name           *string `json:"name,omitempty" validate:"omitempty,min=1,max=150"`
	Description    *string `json:"description,omitempty" validate:"omitempty,max=10000"`
	Location       *string `json:"location,omitempty" validate:"omitempty,max=150"`
	EmploymentType *string `json:"employmentType,omitempty" validate:"omitempty,oneof=full-time part-time contract internship remote"`
}

func (r JobUpdateRequest) Apply(j *entity.Job) {
	set(&j.Name, r.Name)
	set(&j.Description, r.Description)
	set(&j.Location, r.Location)
	set(&j.EmploymentType, r.EmploymentType)
}

// ==================== NEWSFEED ====================

type NewsfeedRequest struct {
	Name        string `json:"name" validate:"required,min=1,max=200"`
	Description string `json:"description" validate:"required,max=10000"`
	Image       string `json:"image,omitempty" validate:"omitempty,url"`
}

func (r NewsfeedRequest) Apply(n *entity.Newsfeed) {
	n.Name = strings.TrimSpace(r.Name)
	n.Description = r.Description
	n.Image = r.Image
}

type NewsfeedUpdateRequest struct {
	Name        *string `json:"name,omitempty" validate:"omitempty,min=1,max=200"`
	Description *string `json:"description,omitempty" validate:"omitempty,max=10000"`
	Image       *string `json:"image,omitempty" validate:"omitempty,url"`
}

func (r NewsfeedUpdateRequest) Apply(n *entity.Newsfeed) {
	set(&n.Name, r.Name)
	set(&n.Description, r.Description)
	set(&n.Image, r.Image)
}

// ContentListRequest is shared by every content list endpoint.
type ContentListRequest struct {
	PaginatedRequest
	Search string `validate:"max=100"`
}
