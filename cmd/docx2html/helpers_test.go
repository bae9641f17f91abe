package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/alnah/go-docx2html/internal/docx/docxtest"
)

func testEnv() (*Environment, *bytes.Buffer, *bytes.Buffer) {
	var stdout, stderr bytes.Buffer
	env := DefaultEnv()
	env.Stdout = &stdout
	env.Stderr = &stderr
	env.Now = func() time.Time { return time.Date(2026, 3, 14, 10, 0, 0, 0, time.UTC) }
	return env, &stdout, &stderr
}

// writeSession writes a small session document.
func writeSession(t *testing.T, path string, session string) {
	t.Helper()
	docxtest.Write(t, path, "",
		docxtest.P("📘 "+session+" – Comunicação"),
		docxtest.H(1, "Objetivos"),
		docxtest.Paragraph{Text: "Ouvir ativamente", NumID: docxtest.BulletList},
		docxtest.H(1, "Atividade prática (15 min)"),
		docxtest.P("Trabalho em pares sobre situações reais do dia a dia."),
		docxtest.H(1, "Reflexão final"),
		docxtest.P("Partilha em grupo."),
	)
}

// sessionTree builds in/Modulo 1/Sessão 1.docx, Sessão 2.docx and a file
// without a session number.
func sessionTree(t *testing.T) string {
	t.Helper()
	root := filepath.Join(t.TempDir(), "in")
	writeSession(t, filepath.Join(root, "Modulo 1", "Sessão 1.docx"), "Sessão 1")
	writeSession(t, filepath.Join(root, "Modulo 1", "Sessão 2.docx"), "Sessão 2")
	writeSession(t, filepath.Join(root, "Modulo 1", "notas.docx"), "Notas")
	return root
}

func readFile(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read %s: %v", path, err)
	}
	return string(data)
}

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "docx2html.yaml")
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}
	return path
}
