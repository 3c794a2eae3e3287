package db

import "testing"

func TestPoolConfig(t *testing.T) {
	creds := DBCreds{
		Host:     "localhost",
		Port:     "5432",
		Username: "placematch",
		Password: "secret",
		Database: "feedback",
	}

	config, err := poolConfig(creds)
	if err != nil {
		t.Fatalf("poolConfig: %v", err)
	}
	if config.ConnConfig.Host != "localhost" {
		t.Errorf("Host = %q, want localhost", config.ConnConfig.Host)
	}
	if config.ConnConfig.Port != 5432 {
		t.Errorf("Port = %d, want 5432", config.ConnConfig.Port)
	}
	if config.ConnConfig.Database != "feedback" {
		t.Errorf("Database = %q, want feedback", config.ConnConfig.Database)
	}
	if config.MaxConns != 4 {
		t.Errorf("MaxConns = %d, want 4", config.MaxConns)
	}
}

func TestPoolConfigInvalidCreds(t *testing.T) {
	creds := DBCreds{
		Host:     "localhost",
		Port:     "not-a-port",
		Username: "placematch",
		Password: "secret",
		Database: "feedback",
	}
	if _, err := poolConfig(creds); err == nil {
		t.Error("expected error for unparseable port")
	}
}
