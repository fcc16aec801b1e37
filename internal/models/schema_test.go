package models

import (
	"sync"
	"testing"

	"gorm.io/gorm/schema"
)

func parseSchema(t *testing.T, model interface{}) *schema.Schema {
	t.Helper()
	s, err := schema.Parse(model, &sync.Map{}, schema.NamingStrategy{})
	if err != nil {
		t.Fatalf("parse %T: %v", model, err)
	}
	return s
}

// Every field that participates in INSERT or UPDATE statements must also
// get a column from AutoMigrate, otherwise writes fail on a fresh database.
func TestWritableFieldsAreMigrated(t *testing.T) {
	all := []interface{}{
		&User{},
		&DriverProfile{},
		&Badge{},
		&Booking{},
		&Trip{},
		&PaymentMethod{},
		&Review{},
	}

	for _, model := range all {
		s := parseSchema(t, model)
		for _, f := range s.Fields {
			if f.DBName == "" {
				continue
			}
			if f.IgnoreMigration && (f.Creatable || f.Updatable) {
				t.Errorf("%s.%s writes to column %q that is never migrated", s.Name, f.Name, f.DBName)
			}
		}
	}
}

func TestUserHasNoPlaintextPasswordColumn(t *testing.T) {
	s := parseSchema(t, &User{})
	if _, ok := s.FieldsByDBName["password"]; ok {
		t.Fatal("users table must not carry a plaintext password column")
	}
	if _, ok := s.FieldsByDBName["password_hash"]; !ok {
		t.Fatal("expected password_hash column on users")
	}
}
