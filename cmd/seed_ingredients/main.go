// seed_ingredients genera un script SQL para poblar el catálogo de ingredientes
// de una empresa a partir de un CSV exportado por sistemas legacy (separador ';',
// codificación ISO-8859-1, típica de exports de Excel en español).
//
// Formato esperado por fila: nombre;unidad;categoria;stock;minimo;costo
//
// Uso: go run ./cmd/seed_ingredients <company_id> [ruta/ingredientes.csv]
// Por defecto busca ingredientes.csv en el directorio actual.
// Escribe: internal/infrastructure/postgres/migrations/002_seed_ingredients.sql
package main

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/shopspring/decimal"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/transform"

	"github.com/jhoicas/Restaurante-api/internal/domain/entity"
)

type ingredientRow struct {
	name     string
	unit     string
	category string
	stock    decimal.Decimal
	minStock decimal.Decimal
	cost     decimal.Decimal
}

func main() {
	if len(os.Args) < 2 {
		fmt.Fprintln(os.Stderr, "Uso: seed_ingredients <company_id> [ingredientes.csv]")
		os.Exit(1)
	}
	companyID := os.Args[1]
	csvPath := "ingredientes.csv"
	if len(os.Args) > 2 {
		csvPath = os.Args[2]
	}

	f, err := os.Open(csvPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Abrir CSV: %v\n", err)
		os.Exit(1)
	}
	defer f.Close()

	// Los exports legacy vienen en ISO-8859-1; decodificar a UTF-8 al leer.
	r := csv.NewReader(transform.NewReader(f, charmap.ISO8859_1.NewDecoder()))
	r.Comma = ';'
	r.FieldsPerRecord = 6
	r.TrimLeadingSpace = true

	records, err := r.ReadAll()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Leer CSV: %v\n", err)
		os.Exit(1)
	}

	var rows []ingredientRow
	var skipped int
	for i, rec := range records {
		// Cabecera opcional en la primera fila
		if i == 0 && strings.EqualFold(strings.TrimSpace(rec[0]), "nombre") {
			continue
		}
		row, err := parseRow(rec)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Fila %d descartada: %v\n", i+1, err)
			skipped++
			continue
		}
		rows = append(rows, row)
	}
	if len(rows) == 0 {
		fmt.Fprintln(os.Stderr, "el CSV no tiene filas válidas")
		os.Exit(1)
	}

	moduleRoot := findModuleRoot()
	outPath := filepath.Join(moduleRoot, "internal", "infrastructure", "postgres", "migrations", "002_seed_ingredients.sql")
	out, err := os.Create(outPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Crear archivo: %v\n", err)
		os.Exit(1)
	}
	defer out.Close()

	out.WriteString("-- Catálogo inicial de ingredientes\n")
	fmt.Fprintf(out, "-- Generado desde %s\n\n", filepath.Base(csvPath))
	out.WriteString("INSERT INTO ingredients (id, company_id, name, unit, category, current_stock, min_stock_level, cost_per_unit, active)\nVALUES\n")
	for i, row := range rows {
		sep := ","
		if i == len(rows)-1 {
			sep = ""
		}
		fmt.Fprintf(out, "  (gen_random_uuid(), '%s', '%s', '%s', '%s', %s, %s, %s, true)%s\n",
			escapeSQL(companyID), escapeSQL(row.name), row.unit, row.category,
			row.stock.String(), row.minStock.String(), row.cost.String(), sep)
	}
	out.WriteString("ON CONFLICT (company_id, name) DO UPDATE SET\n")
	out.WriteString("  unit = EXCLUDED.unit,\n  category = EXCLUDED.category,\n")
	out.WriteString("  min_stock_level = EXCLUDED.min_stock_level,\n  cost_per_unit = EXCLUDED.cost_per_unit;\n")

	fmt.Printf("Generado %s: %d ingredientes (%d filas descartadas)\n", outPath, len(rows), skipped)
}

func parseRow(rec []string) (ingredientRow, error) {
	var row ingredientRow
	row.name = strings.TrimSpace(rec[0])
	row.unit = strings.ToLower(strings.TrimSpace(rec[1]))
	row.category = strings.ToLower(strings.TrimSpace(rec[2]))
	if row.name == "" {
		return row, fmt.Errorf("nombre vacío")
	}
	if !entity.ValidUnit(row.unit) {
		return row, fmt.Errorf("unidad desconocida %q", row.unit)
	}
	if !entity.ValidIngredientCategory(row.category) {
		return row, fmt.Errorf("categoría desconocida %q", row.category)
	}

	var err error
	// Los exports en español usan coma decimal.
	if row.stock, err = parseDecimal(rec[3]); err != nil {
		return row, fmt.Errorf("stock: %w", err)
	}
	if row.minStock, err = parseDecimal(rec[4]); err != nil {
		return row, fmt.Errorf("mínimo: %w", err)
	}
	if row.cost, err = parseDecimal(rec[5]); err != nil {
		return row, fmt.Errorf("costo: %w", err)
	}
	if row.stock.IsNegative() || row.minStock.IsNegative() || row.cost.IsNegative() {
		return row, fmt.Errorf("valores negativos")
	}
	return row, nil
}

func parseDecimal(s string) (decimal.Decimal, error) {
	s = strings.ReplaceAll(strings.TrimSpace(s), ",", ".")
	if s == "" {
		return decimal.Zero, nil
	}
	return decimal.NewFromString(s)
}

func escapeSQL(s string) string {
	return strings.ReplaceAll(s, "'", "''")
}

func findModuleRoot() string {
	dir, _ := os.Getwd()
	for {
		if _, err := os.Stat(filepath.Join(dir, "go.mod")); err == nil {
			return dir
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return dir
		}
		dir = parent
	}
}
