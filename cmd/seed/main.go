// seed carga usuarios desde un CSV exportado por RRHH (email,full_name,department,employee_id,role).
// Los existentes (por email) se actualizan sin tocar su contraseña; los nuevos reciben --default-password.
//
// Uso: go run ./cmd/seed [--charset=iso-8859-1] [--default-password=...] usuarios.csv
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/jhoicas/Asistencia-api/internal/application/usecase"
	"github.com/jhoicas/Asistencia-api/internal/domain/entity"
	"github.com/jhoicas/Asistencia-api/internal/domain/repository"
	"github.com/jhoicas/Asistencia-api/internal/infrastructure/postgres"
	"github.com/jhoicas/Asistencia-api/pkg/config"
	"golang.org/x/crypto/bcrypt"
)

func main() {
	charset := flag.String("charset", "utf-8", "codificación del CSV (utf-8 | iso-8859-1)")
	defaultPassword := flag.String("default-password", "", "contraseña inicial para usuarios nuevos")
	flag.Parse()

	if flag.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "Uso: seed [--charset=iso-8859-1] [--default-password=...] usuarios.csv")
		os.Exit(2)
	}

	f, err := os.Open(flag.Arg(0))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Abrir CSV: %v\n", err)
		os.Exit(1)
	}
	defer f.Close()

	in, err := decodeInput(f, *charset)
	if err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		os.Exit(1)
	}
	rows, err := parseRows(in)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Leer CSV: %v\n", err)
		os.Exit(1)
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Configuración: %v\n", err)
		os.Exit(1)
	}
	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Conexión a PostgreSQL: %v\n", err)
		os.Exit(1)
	}
	defer pool.Close()

	created, updated, err := upsertUsers(ctx, postgres.NewUserRepository(pool), rows, *defaultPassword, time.Now().UTC())
	if err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		os.Exit(1)
	}
	fmt.Printf("Usuarios: %d creados, %d actualizados\n", created, updated)
}

func upsertUsers(ctx context.Context, repo repository.UserRepository, rows []seedRow, defaultPassword string, now time.Time) (created, updated int, err error) {
	var hash string
	for _, row := range rows {
		existing, err := repo.FindByEmail(ctx, row.Email)
		if err != nil {
			return created, updated, fmt.Errorf("línea %d: %w", row.Line, err)
		}
		if existing != nil {
			existing.FullName = row.FullName
			existing.Department = row.Department
			existing.EmployeeID = row.EmployeeID
			existing.Role = row.Role
			existing.UpdatedAt = now
			if err := repo.Update(ctx, existing); err != nil {
				return created, updated, fmt.Errorf("línea %d: %w", row.Line, err)
			}
			updated++
			continue
		}

		if len(defaultPassword) < usecase.MinPasswordLength {
			return created, updated, fmt.Errorf("línea %d: usuario nuevo %s requiere --default-password de al menos %d caracteres",
				row.Line, row.Email, usecase.MinPasswordLength)
		}
		if hash == "" {
			b, err := bcrypt.GenerateFromPassword([]byte(defaultPassword), bcrypt.DefaultCost)
			if err != nil {
				return created, updated, fmt.Errorf("hash password: %w", err)
			}
			hash = string(b)
		}
		user := &entity.User{
			ID:           entity.NewID(),
			Email:        row.Email,
			PasswordHash: hash,
			FullName:     row.FullName,
			Role:         row.Role,
			Department:   row.Department,
			EmployeeID:   row.EmployeeID,
			Active:       true,
			CreatedAt:    now,
			UpdatedAt:    now,
		}
		if err := repo.Create(ctx, user); err != nil {
			return created, updated, fmt.Errorf("línea %d: %w", row.Line, err)
		}
		created++
	}
	return created, updated, nil
}
