package config

import "testing"

func TestValidate(t *testing.T) {
	cases := []struct {
		name    string
		cfg     Config
		wantErr bool
	}{
		{"dev with default secret", Config{Env: "dev", JWTSecret: defaultJWTSecret}, false},
		{"prod with default secret", Config{Env: "prod", JWTSecret: defaultJWTSecret}, true},
		{"prod with real secret", Config{Env: "prod", JWTSecret: "a-real-secret"}, false},
		{"empty secret", Config{Env: "dev", JWTSecret: ""}, true},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			err := c.cfg.Validate()
			if (err != nil) != c.wantErr {
				t.Errorf("Validate: got %v, wantErr %v", err, c.wantErr)
			}
		})
	}
}

func TestDatabaseURL(t *testing.T) {
	cfg := Config{
		DBUser: "u", DBPass: "p", DBHost: "h", DBPort: "5432", DBName: "d",
	}
	want := "postgres://u:p@h:5432/d?sslmode=disable"
	if got := cfg.DatabaseURL(); got != want {
		t.Errorf("DatabaseURL: got %q, want %q", got, want)
	}
}

func TestParseCORSOrigins(t *testing.T) {
	if got := parseCORSOrigins(""); got != nil {
		t.Errorf("empty input: got %v, want nil", got)
	}
	got := parseCORSOrigins(" https://a.example.com , http://localhost:3000 ,")
	if len(got) != 2 || got[0] != "https://a.example.com" || got[1] != "http://localhost:3000" {
		t.Errorf("unexpected origins: %v", got)
	}
}
