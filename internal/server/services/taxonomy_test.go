package services

import (
	"context"
	"errors"
	"testing"

	"github.com/chati-cms/chati/internal/common"
)

func TestCreateCategory_DerivesSlug(t *testing.T) {
	db, _ := newSQLMockDB(t)
	defer db.Close()

	s := NewTaxonomyService(db, &fakeRepoManager{tx: &fakeTaxonomyRepo{}})

	c, err := s.CreateCategory(context.Background(), "", "Product Updates", "")
	if err != nil {
		t.Fatalf("CreateCategory error: %v", err)
	}
	if c.Slug != "product-updates" {
		t.Fatalf("want derived slug product-updates, got %q", c.Slug)
	}
}

func TestCreateTag_SlugConflict(t *testing.T) {
	db, _ := newSQLMockDB(t)
	defer db.Close()

	s := NewTaxonomyService(db, &fakeRepoManager{tx: &fakeTaxonomyRepo{tagErr: common.ErrConflict}})

	_, err := s.CreateTag(context.Background(), "golang", "Golang")
	if !errors.Is(err, common.ErrConflict) {
		t.Fatalf("want ErrConflict, got %v", err)
	}
}

func TestUpdateCategory_MissingTitle(t *testing.T) {
	db, _ := newSQLMockDB(t)
	defer db.Close()

	s := NewTaxonomyService(db, &fakeRepoManager{tx: &fakeTaxonomyRepo{}})

	_, err := s.UpdateCategory(context.Background(), "c1", "slug", "", "")
	if !errors.Is(err, common.ErrValidation) {
		t.Fatalf("want ErrValidation, got %v", err)
	}
}
