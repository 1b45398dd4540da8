package persist

import (
	"context"
	"encoding/json"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/shopspring/decimal"

	"shopledger/domain"
)

// timeLayout matches the stored order timestamp format.
const timeLayout = "2006-01-02 15:04:05"

// itemRecord is the serialized form of a catalog item. Inline cover
// bytes are not persisted; only a URL reference survives a restart.
type itemRecord struct {
	Title           string          `json:"title"`
	Owner           string          `json:"owner"`
	TotalCopies     int             `json:"total_copies"`
	AvailableCopies int             `json:"available_copies"`
	Price           decimal.Decimal `json:"price"`
	ImageURL        string          `json:"image_url,omitempty"`
}

// orderRecord is the serialized form of a ledger order.
type orderRecord struct {
	OrderID   string          `json:"order_id"`
	Time      string          `json:"time"`
	Customer  string          `json:"customer"`
	UserID    string          `json:"user_id"`
	Items     map[string]int  `json:"items"`
	Status    string          `json:"status"`
	TotalUSD  decimal.Decimal `json:"total_usd"`
	AdminNote string          `json:"admin_note"`
}

type stateFile struct {
	Items  map[string]itemRecord `json:"items"`
	Orders []orderRecord         `json:"orders"`
}

// FileGateway persists the snapshot as a single JSON file, written to a
// temp file and renamed so readers never see a partial write.
type FileGateway struct {
	path   string
	logger *slog.Logger
}

// compile-time assertion that FileGateway implements Gateway
var _ Gateway = (*FileGateway)(nil)

// NewFileGateway constructs a FileGateway at the given path. Nothing is
// read until Load.
func NewFileGateway(path string) *FileGateway {
	return &FileGateway{path: path, logger: slog.Default()}
}

// Load reads the state file. A missing, empty, or unparseable file
// degrades to an empty snapshot; corruption is logged, not surfaced.
func (g *FileGateway) Load(ctx context.Context) Snapshot {
	b, err := os.ReadFile(g.path)
	if err != nil {
		if !os.IsNotExist(err) {
			g.logger.Warn("state file unreadable, starting empty", "path", g.path, "error", err)
		}
		return EmptySnapshot()
	}
	if len(b) == 0 {
		return EmptySnapshot()
	}
	var state stateFile
	if err := json.Unmarshal(b, &state); err != nil {
		g.logger.Warn("state file corrupt, starting empty", "path", g.path, "error", err)
		return EmptySnapshot()
	}
	return decodeState(state)
}

// Save overwrites the whole state file.
func (g *FileGateway) Save(ctx context.Context, snap Snapshot) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	dir := filepath.Dir(g.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}
	b, err := json.MarshalIndent(encodeState(snap), "", "  ")
	if err != nil {
		return err
	}
	tmp := g.path + ".tmp"
	if err := os.WriteFile(tmp, b, 0o644); err != nil {
		return err
	}
	return os.Rename(tmp, g.path)
}

func encodeState(snap Snapshot) stateFile {
	state := stateFile{
		Items:  make(map[string]itemRecord, len(snap.Items)),
		Orders: make([]orderRecord, 0, len(snap.Orders)),
	}
	for id, item := range snap.Items {
		rec := itemRecord{
			Title:           item.Title,
			Owner:           item.Owner,
			TotalCopies:     item.TotalQuantity,
			AvailableCopies: item.AvailableQuantity,
			Price:           item.UnitPrice,
		}
		if item.Cover.Kind == domain.CoverURL {
			rec.ImageURL = item.Cover.URL
		}
		state.Items[id] = rec
	}
	for _, order := range snap.Orders {
		state.Orders = append(state.Orders, orderRecord{
			OrderID:   order.ID,
			Time:      order.Time.Format(timeLayout),
			Customer:  order.Customer,
			UserID:    order.UserID,
			Items:     order.Items,
			Status:    string(order.Status),
			TotalUSD:  order.Total,
			AdminNote: order.AdminNote,
		})
	}
	return state
}

func decodeState(state stateFile) Snapshot {
	snap := Snapshot{
		Items:  make(map[string]domain.Item, len(state.Items)),
		Orders: make([]domain.Order, 0, len(state.Orders)),
	}
	for id, rec := range state.Items {
		item := domain.Item{
			ID:                id,
			Title:             rec.Title,
			Owner:             rec.Owner,
			TotalQuantity:     rec.TotalCopies,
			AvailableQuantity: rec.AvailableCopies,
			UnitPrice:         rec.Price,
			Cover:             domain.NoCover(),
		}
		if rec.ImageURL != "" {
			item.Cover = domain.URLCover(rec.ImageURL)
		}
		snap.Items[id] = item
	}
	for _, rec := range state.Orders {
		ts, err := time.Parse(timeLayout, rec.Time)
		if err != nil {
			ts = time.Time{}
		}
		items := rec.Items
		if items == nil {
			items = make(map[string]int)
		}
		snap.Orders = append(snap.Orders, domain.Order{
			ID:        rec.OrderID,
			Time:      ts,
			Customer:  rec.Customer,
			UserID:    rec.UserID,
			Items:     items,
			Status:    domain.OrderStatus(rec.Status),
			Total:     rec.TotalUSD,
			AdminNote: rec.AdminNote,
		})
	}
	return snap
}
