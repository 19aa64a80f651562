package entity

type Category struct {
	Base `bson:",inline"`
	Name string `json:"name" bson:"name"`
	Slug string `json:"slug" bson:"slug"`
}

func (c *Category) SlugSource() string  { return c.Name }
func (c *Category) SetSlug(slug string) { c.Slug = slug }
func (c *Category) GetSlug() string     { return c.Slug }

type Feature struct {
	Base        `bson:",inline"`
	Name        string `json:"name" bson:"name"`
	Slug        string `json:"slug" bson:"slug"`
	Description string `json:"description" bson:"description"`
}

func (f *Feature) SlugSource() string  { return f.Name }
func (f *Feature) SetSlug(slug string) { f.Slug = slug }
func (f *Feature) GetSlug() string     { return f.Slug }

// Integration names are unique.
type Integration struct {
	Base        `bson:",inline"`
	Name        string `json:"name" bson:"name"`
	Slug        string `json:"slug" bson:"slug"`
	Description string `json:"description" bson:"description"`
	Link        string `json:"link" bson:"link"`
}

func (i *Integration) SlugSource() string  { return i.Name }
func (i *Integration) SetSlug(slug string) { i.Slug = slug }
func (i *Integration) GetSlug() string     { return i.Slug }

// FAQ derives its slug from the question.
type FAQ struct {
	Base     `bson:",inline"`
	Question string `json:"question" bson:"question"`
	Answer   string `json:"answer" bson:"answer"`
	Slug     string `json:"slug" bson:"slug"`
}

func (f *FAQ) SlugSource() string  { return f.Question }
func (f *FAQ) SetSlug(slug string) { f.Slug = slug }
func (f *FAQ) GetSlug() string     { return f.Slug }

type Job struct {
	Base           `bson:",inline"`
	Name           string `json:"name" bson:"name"`
	Slug           string `json:"slug" bson:"slug"`
	Description    string `json:"description" bson:"description"`
	Location       string `json:"location" bson:"location"`
	EmploymentType string `json:"employmentType" bson:"employmentType"`
}

func (j *Job) SlugSource() string  { return j.Name }
func (j *Job) SetSlug(slug string) { j.Slug = slug }
func (j *Job) GetSlug() string     { return j.Slug }

type Newsfeed struct {
	Base        `bson:",inline"`
	Name        string `json:"name" bson:"name"`
	Slug        string `json:"slug" bson:"slug"`
	Description string `json:"description" bson:"description"`
	Image       string `json:"image" bson:"image"`
}

func (n *Newsfeed) SlugSource() string  { return n.Name }
func (n *Newsfeed) SetSlug(slug string) { n.Slug = slug }
func (n *Newsfeed) GetSlug() string     { return n.Slug }

// Content constrains generic code to pointers of slug-bearing entities.
type Content[E any] interface {
	*E
	Sluggable
}
