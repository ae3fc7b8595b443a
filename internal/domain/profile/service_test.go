package profile

import (
	"context"
	"fmt"
	"strings"
	"testing"

	gormsqlite "gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
	_ "modernc.org/sqlite"
)

func setupTestService(t *testing.T) *Service {
	t.Helper()
	dsn := fmt.Sprintf("file:profile_test_%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(
		gormsqlite.New(gormsqlite.Config{DriverName: "sqlite", DSN: dsn}),
		&gorm.Config{Logger: logger.Default.LogMode(logger.Silent)},
	)
	if err != nil {
		t.Fatalf("failed to open sqlite db: %v", err)
	}
	if err := db.AutoMigrate(&ProfessionalProfile{}, &ProfessionalPrivate{}, &CustomerProfile{}); err != nil {
		t.Fatalf("failed to migrate db: %v", err)
	}
	return NewService(NewRepository(db))
}

func strptr(s string) *string { return &s }

func TestCreateForAccountProfessional(t *testing.T) {
	svc := setupTestService(t)
	ctx := context.Background()

	if err := svc.CreateForAccount(ctx, "user-1", AccountTypeProfessional, "Jane Doe"); err != nil {
		t.Fatalf("CreateForAccount returned error: %v", err)
	}

	p, err := svc.GetOwnProfessional(ctx, "user-1")
	if err != nil {
		t.Fatalf("GetOwnProfessional returned error: %v", err)
	}
	if p.FullName != "Jane Doe" {
		t.Fatalf("expected full name kept, got %q", p.FullName)
	}
	if p.DocumentsUploaded {
		t.Fatal("new profile must start unverified")
	}
}

func TestCreateForAccountCustomerGetsReferralCode(t *testing.T) {
	svc := setupTestService(t)
	ctx := context.Background()

	if err := svc.CreateForAccount(ctx, "abcd1234-user", AccountTypeCustomer, "John Roe"); err != nil {
		t.Fatalf("CreateForAccount returned error: %v", err)
	}

	c, err := svc.GetCustomer(ctx, "abcd1234-user")
	if err != nil {
		t.Fatalf("GetCustomer returned error: %v", err)
	}
	if !strings.HasPrefix(c.ReferralCode, "HANDY") {
		t.Fatalf("expected HANDY-prefixed referral code, got %q", c.ReferralCode)
	}
	if c.ReferralCode != "HANDYABCD" {
		t.Fatalf("expected code derived from user id, got %q", c.ReferralCode)
	}
}

func TestUpdateProfessionalSplitsPublicAndPrivate(t *testing.T) {
	svc := setupTestService(t)
	ctx := context.Background()

	if err := svc.CreateForAccount(ctx, "user-2", AccountTypeProfessional, "Jane Doe"); err != nil {
		t.Fatalf("CreateForAccount returned error: %v", err)
	}

	skills := []string{"plumbing", "tiling"}
	own, err := svc.UpdateProfessional(ctx, "user-2", UpdateRequest{
		Profession:  strptr("Plumber"),
		Skills:      &skills,
		PhoneNumber: strptr("+254700000001"),
	})
	if err != nil {
		t.Fatalf("UpdateProfessional returned error: %v", err)
	}
	if own.Profession != "Plumber" {
		t.Fatalf("expected profession updated, got %q", own.Profession)
	}
	if len(own.Skills) != 2 || own.Skills[0] != "plumbing" {
		t.Fatalf("expected skills round-trip, got %v", own.Skills)
	}
	if own.PhoneNumber != "+254700000001" {
		t.Fatalf("expected private phone merged into owner view, got %q", own.PhoneNumber)
	}

	// The public read path must never carry private contact fields.
	pub, err := svc.GetPublicProfessional(ctx, own.ID)
	if err != nil {
		t.Fatalf("GetPublicProfessional returned error: %v", err)
	}
	if pub.Profession != "Plumber" {
		t.Fatalf("expected public fields visible, got %q", pub.Profession)
	}
}

func TestUpdateProfessionalPrivateUpsertIsRepeatable(t *testing.T) {
	svc := setupTestService(t)
	ctx := context.Background()

	if err := svc.CreateForAccount(ctx, "user-3", AccountTypeProfessional, "Jane Doe"); err != nil {
		t.Fatalf("CreateForAccount returned error: %v", err)
	}

	if _, err := svc.UpdateProfessional(ctx, "user-3", UpdateRequest{PhoneNumber: strptr("111")}); err != nil {
		t.Fatalf("first private update returned error: %v", err)
	}
	own, err := svc.UpdateProfessional(ctx, "user-3", UpdateRequest{WhatsappNumber: strptr("222")})
	if err != nil {
		t.Fatalf("second private update returned error: %v", err)
	}
	if own.PhoneNumber != "111" || own.WhatsappNumber != "222" {
		t.Fatalf("expected both private fields kept, got %q / %q", own.PhoneNumber, own.WhatsappNumber)
	}
}

func TestListProfessionalsFilters(t *testing.T) {
	svc := setupTestService(t)
	ctx := context.Background()

	for i, spec := range []struct{ user, profession, location string }{
		{"u-a", "Plumber", "Nairobi"},
		{"u-b", "Electrician", "Nairobi"},
		{"u-c", "Plumber", "Mombasa"},
	} {
		if err := svc.CreateForAccount(ctx, spec.user, AccountTypeProfessional, fmt.Sprintf("Pro %d", i)); err != nil {
			t.Fatalf("CreateForAccount returned error: %v", err)
		}
		if _, err := svc.UpdateProfessional(ctx, spec.user, UpdateRequest{
			Profession: strptr(spec.profession),
			Location:   strptr(spec.location),
		}); err != nil {
			t.Fatalf("UpdateProfessional returned error: %v", err)
		}
	}

	plumbers, err := svc.ListProfessionals(ctx, "Plumber", "")
	if err != nil {
		t.Fatalf("ListProfessionals returned error: %v", err)
	}
	if len(plumbers) != 2 {
		t.Fatalf("expected 2 plumbers, got %d", len(plumbers))
	}

	nairobi, err := svc.ListProfessionals(ctx, "Plumber", "Nairobi")
	if err != nil {
		t.Fatalf("ListProfessionals returned error: %v", err)
	}
	if len(nairobi) != 1 {
		t.Fatalf("expected 1 Nairobi plumber, got %d", len(nairobi))
	}
}

func TestRoleLookupsReturnEmptyForMissingRole(t *testing.T) {
	svc := setupTestService(t)
	ctx := context.Background()

	if err := svc.CreateForAccount(ctx, "user-4", AccountTypeCustomer, "John Roe"); err != nil {
		t.Fatalf("CreateForAccount returned error: %v", err)
	}

	proID, err := svc.ProfessionalIDByUser(ctx, "user-4")
	if err != nil {
		t.Fatalf("ProfessionalIDByUser returned error: %v", err)
	}
	if proID != "" {
		t.Fatalf("expected empty professional id, got %q", proID)
	}

	custID, err := svc.CustomerIDByUser(ctx, "user-4")
	if err != nil {
		t.Fatalf("CustomerIDByUser returned error: %v", err)
	}
	if custID == "" {
		t.Fatal("expected customer id for customer account")
	}
}

func TestMarkDocumentsUploaded(t *testing.T) {
	svc := setupTestService(t)
	ctx := context.Background()

	if err := svc.CreateForAccount(ctx, "user-5", AccountTypeProfessional, "Jane Doe"); err != nil {
		t.Fatalf("CreateForAccount returned error: %v", err)
	}
	if err := svc.MarkDocumentsUploaded(ctx, "user-5"); err != nil {
		t.Fatalf("MarkDocumentsUploaded returned error: %v", err)
	}

	own, err := svc.GetOwnProfessional(ctx, "user-5")
	if err != nil {
		t.Fatalf("GetOwnProfessional returned error: %v", err)
	}
	if !own.DocumentsUploaded {
		t.Fatal("expected documents flag set")
	}
}
