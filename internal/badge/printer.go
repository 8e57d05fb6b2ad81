package badge

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// Printer hands a badge to whatever renders and prints the physical card.
type Printer interface {
	Print(ctx context.Context, data Data) error
}

// Discard is a no-op printer for tests and --no-print runs.
type Discard struct{}

func (Discard) Print(ctx context.Context, data Data) error { return nil }

// SpoolPrinter drops one text card and one QR PNG per badge into a spool
// directory watched by the printer daemon.
type SpoolPrinter struct {
	Dir    string
	QRSize int

	logger *slog.Logger
}

func NewSpoolPrinter(dir string, qrSize int) *SpoolPrinter {
	return &SpoolPrinter{
		Dir:    dir,
		QRSize: qrSize,
		logger: slog.With("component", "printer"),
	}
}

func (p *SpoolPrinter) Print(ctx context.Context, data Data) error {
	if err := os.MkdirAll(p.Dir, 0755); err != nil {
		return fmt.Errorf("spool dir: %w", err)
	}

	base := filepath.Join(p.Dir, sanitize(data.BadgeID))

	png, err := EncodePNG(data.BadgeID, p.QRSize)
	if err != nil {
		return fmt.Errorf("badge qr: %w", err)
	}
	if err := os.WriteFile(base+".png", png, 0644); err != nil {
		return fmt.Errorf("write qr: %w", err)
	}

	if err := os.WriteFile(base+".txt", []byte(Card(data)), 0644); err != nil {
		return fmt.Errorf("write card: %w", err)
	}

	p.logger.Info("Badge spooled", "badge_id", data.BadgeID, "dir", p.Dir)
	return nil
}

// Card renders the badge text layout: destination room, contact, purpose
// and badge identifier, stamped with the print time.
func Card(data Data) string {
	var b strings.Builder
	fmt.Fprintf(&b, "BADGE VISITEUR\n")
	fmt.Fprintf(&b, "%s %s\n", data.FirstName, data.LastName)
	fmt.Fprintf(&b, "Local: %s\n", data.Destination)
	fmt.Fprintf(&b, "Voir: %s\n", data.Contact)
	fmt.Fprintf(&b, "Type: %s\n", data.Purpose)
	fmt.Fprintf(&b, "Badge ID: %s\n", data.BadgeID)
	fmt.Fprintf(&b, "Valide le %s\n", time.Now().Format("02/01/2006 15:04"))
	return b.String()
}

// sanitize keeps badge identifiers safe as file names.
func sanitize(s string) string {
	return strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '-', r == '_':
			return r
		default:
			return '_'
		}
	}, s)
}
