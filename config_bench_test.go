package inifile

import (
	"os"
	"path/filepath"
	"testing"
)

const benchConfig = `[user]
name = "Bench User" ; who
email = "bench@example.com"
[core]
editor = vim
hosts = ["a", ("b", 1), {"c": [2, 3]}]
`

func BenchmarkLoadConfig(b *testing.B) {
	td := b.TempDir()
	configPath := filepath.Join(td, "config.ini")

	if err := os.WriteFile(configPath, []byte(benchConfig), 0o644); err != nil {
		b.Fatal(err)
	}

	for b.Loop() {
		cfg, err := LoadConfig(configPath)
		if err != nil {
			b.Fatal(err)
		}
		if cfg == nil {
			b.Fatal("nil config")
		}
	}
}

func BenchmarkGet(b *testing.B) {
	td := b.TempDir()
	configPath := filepath.Join(td, "config.ini")

	if err := os.WriteFile(configPath, []byte(benchConfig), 0o644); err != nil {
		b.Fatal(err)
	}

	cfg, err := LoadConfig(configPath)
	if err != nil {
		b.Fatal(err)
	}

	for b.Loop() {
		if _, err := cfg.Get("core", "hosts"); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkSet(b *testing.B) {
	td := b.TempDir()
	configPath := filepath.Join(td, "config.ini")

	if err := os.WriteFile(configPath, []byte(benchConfig), 0o644); err != nil {
		b.Fatal(err)
	}

	cfg, err := LoadConfigWithOptions(configPath, Options{NoWrites: true})
	if err != nil {
		b.Fatal(err)
	}

	b.ResetTimer()

	for i := range b.N {
		if err := cfg.Set("user", "name", NewInt(int64(i))); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkDecode(b *testing.B) {
	for b.Loop() {
		_ = Decode(`["a", ("b", 1), {"c": [2, 3]}, 1.5f, none]`)
	}
}
