package services

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/chati-cms/chati/internal/common"
)

func TestNavigation_UnknownKey(t *testing.T) {
	db, _ := newSQLMockDB(t)
	defer db.Close()

	s := NewSiteService(db, &fakeRepoManager{st: &fakeSiteRepo{}})

	if _, err := s.GetNavigation(context.Background(), "sidebar"); !errors.Is(err, common.ErrValidation) {
		t.Fatalf("want ErrValidation, got %v", err)
	}
}

func TestNavigation_UpdateValidatesJSON(t *testing.T) {
	db, _ := newSQLMockDB(t)
	defer db.Close()

	s := NewSiteService(db, &fakeRepoManager{st: &fakeSiteRepo{}})

	_, err := s.UpdateNavigation(context.Background(), "header", json.RawMessage(`{broken`))
	if !errors.Is(err, common.ErrValidation) {
		t.Fatalf("want ErrValidation, got %v", err)
	}

	nav, err := s.UpdateNavigation(context.Background(), "footer", json.RawMessage(`[{"label":"Home","url":"/"}]`))
	if err != nil {
		t.Fatalf("UpdateNavigation error: %v", err)
	}
	if nav.Key != "footer" {
		t.Fatalf("unexpected key %q", nav.Key)
	}
}

func TestCreateTheme_DefaultClearsOthers(t *testing.T) {
	db, mock := newSQLMockDB(t)
	defer db.Close()
	mock.ExpectBegin()
	mock.ExpectCommit()

	repo := &fakeSiteRepo{}
	s := NewSiteService(db, &fakeRepoManager{st: repo})

	theme, err := s.CreateTheme(context.Background(), &ThemeInput{
		Name:           "Dark",
		PrimaryColor:   "#111111",
		SecondaryColor: "#222222",
		IsDefault:      true,
	})
	if err != nil {
		t.Fatalf("CreateTheme error: %v", err)
	}
	if repo.clearedExcept != theme.ID {
		t.Fatalf("other defaults not cleared, except=%q", repo.clearedExcept)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("sql expectations: %v", err)
	}
}

func TestCreateTheme_NonDefaultLeavesOthersAlone(t *testing.T) {
	db, mock := newSQLMockDB(t)
	defer db.Close()
	mock.ExpectBegin()
	mock.ExpectCommit()

	repo := &fakeSiteRepo{}
	s := NewSiteService(db, &fakeRepoManager{st: repo})

	_, err := s.CreateTheme(context.Background(), &ThemeInput{
		Name:           "Light",
		PrimaryColor:   "#ffffff",
		SecondaryColor: "#eeeeee",
	})
	if err != nil {
		t.Fatalf("CreateTheme error: %v", err)
	}
	if repo.clearedExcept != "" {
		t.Fatalf("non-default create must not clear defaults")
	}
}

func TestUpdateTheme_RollsBackWhenClearFails(t *testing.T) {
	db, mock := newSQLMockDB(t)
	defer db.Close()
	mock.ExpectBegin()
	mock.ExpectRollback()

	repo := &fakeSiteRepo{clearErr: errBoom{}}
	s := NewSiteService(db, &fakeRepoManager{st: repo})

	_, err := s.UpdateTheme(context.Background(), "t1", &ThemeInput{
		Name:           "Dark",
		PrimaryColor:   "#111111",
		SecondaryColor: "#222222",
		IsDefault:      true,
	})
	if err == nil {
		t.Fatalf("expected error")
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("sql expectations: %v", err)
	}
}

func TestCreateTheme_MissingColors(t *testing.T) {
	db, _ := newSQLMockDB(t)
	defer db.Close()

	s := NewSiteService(db, &fakeRepoManager{st: &fakeSiteRepo{}})

	_, err := s.CreateTheme(context.Background(), &ThemeInput{Name: "Bare"})
	if !errors.Is(err, common.ErrValidation) {
		t.Fatalf("want ErrValidation, got %v", err)
	}
}
