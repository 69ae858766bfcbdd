package types

import (
	"encoding/json"
	"fmt"
	"strings"
)

// Category is a customer category under the published tariff.
type Category int

const (
	CategoryResidential Category = iota + 1
	CategoryNonResidential
	CategorySLTLV
	CategorySLTMV1HV
	CategorySLTMV2
	CategorySLTHV
	CategorySLTHVMines
)

// categoryNames is in display order.
var categoryNames = []struct {
	c    Category
	name string
}{
	{CategoryResidential, "Residential"},
	{CategoryNonResidential, "Non-Residential"},
	{CategorySLTLV, "SLT-LV"},
	{CategorySLTMV1HV, "SLT-MV1/HV"},
	{CategorySLTMV2, "SLT-MV2"},
	{CategorySLTHV, "SLT-HV"},
	{CategorySLTHVMines, "SLT-HV MINES"},
}

// Categories returns every supported category in display order.
func Categories() []Category {
	out := make([]Category, len(categoryNames))
	for i, cn := range categoryNames {
		out[i] = cn.c
	}
	return out
}

// ParseCategory returns the Category with the given published name.
func ParseCategory(name string) (Category, error) {
	for _, cn := range categoryNames {
		if cn.name == name {
			return cn.c, nil
		}
	}
	return 0, fmt.Errorf("%w: unsupported customer category: %q", ErrInvalidInput, name)
}

// String returns the published category name.
func (c Category) String() string {
	for _, cn := range categoryNames {
		if cn.c == c {
			return cn.name
		}
	}
	return fmt.Sprintf("Category(%d)", int(c))
}

// Valid reports whether c is one of the supported categories.
func (c Category) Valid() bool {
	return c >= CategoryResidential && c <= CategorySLTHVMines
}

// IsResidential reports whether the category name starts with "Residential".
// Residential categories are exempt from tax.
func (c Category) IsResidential() bool {
	return strings.HasPrefix(c.String(), "Residential")
}

// IsTaxable reports whether tax applies to bills in this category.
func (c Category) IsTaxable() bool {
	return !c.IsResidential()
}

// IsSLT reports whether the category is one of the special-load-tariff
// classes.
func (c Category) IsSLT() bool {
	return c >= CategorySLTLV && c <= CategorySLTHVMines
}

// MarshalJSON encodes the category as its published name.
func (c Category) MarshalJSON() ([]byte, error) {
	if !c.Valid() {
		return nil, fmt.Errorf("%w: unsupported customer category: %d", ErrInvalidInput, int(c))
	}
	return json.Marshal(c.String())
}

// UnmarshalJSON decodes a published category name.
func (c *Category) UnmarshalJSON(b []byte) error {
	var name string
	if err := json.Unmarshal(b, &name); err != nil {
		return err
	}
	parsed, err := ParseCategory(name)
	if err != nil {
		return err
	}
	*c = parsed
	return nil
}
