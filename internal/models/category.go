package models

import "time"

// Category groups products.
type Category struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	CreatedAt   time.Time `json:"createdAt"`
}

func (c Category) EntityID() string { return c.ID }

// CategoryPatch carries the fields of a category save. Nil fields are left
// untouched on update.
type CategoryPatch struct {
	ID          string  `json:"id,omitempty"`
	Name        *string `json:"name,omitempty"`
	Description *string `json:"description,omitempty"`
}

func (p CategoryPatch) PatchID() string { return p.ID }

func (p CategoryPatch) ApplyTo(c *Category) {
	if p.Name != nil {
		c.Name = *p.Name
	}
	if p.Description != nil {
		c.Description = *p.Description
	}
}

func (p CategoryPatch) Build(id string, now time.Time) Category {
	c := Category{ID: id, CreatedAt: stamp(now)}
	p.ApplyTo(&c)
	return c
}

// CategoryView is a category with the number of products assigned to it.
type CategoryView struct {
	Category
	ProductCount int `json:"productCount"`
}
