package postgres

import (
	"context"
	"errors"
	"fmt"
	"net"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"

	"github.com/jhoicas/autocars-api/internal/domain"
)

// isUniqueViolation verifica si un error es una violación de constraint único (23505).
func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23505" // unique_violation
	}
	return strings.Contains(err.Error(), "23505")
}

// isTransportError distingue fallos de red del resto. Un PgError significa que
// el servidor respondió, así que nunca cuenta como transporte.
func isTransportError(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return false
	}
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
		return true
	}
	var netErr net.Error
	if errors.As(err, &netErr) {
		return true
	}
	return pgconn.SafeToRetry(err)
}

// classify envuelve errores del backend remoto: los fallos de transporte se
// marcan con ErrRemoteUnavailable para que el llamador pueda degradar a local.
func classify(op string, err error) error {
	if isTransportError(err) {
		return fmt.Errorf("%s: %v: %w", op, err, domain.ErrRemoteUnavailable)
	}
	return fmt.Errorf("%s: %w", op, err)
}
