package commands

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"go.uber.org/zap"

	"github.com/mamadbah2/stockdesk/internal/domain/models"
)

// ErrInvalidArguments indicates the command payload could not be parsed.
var ErrInvalidArguments = errors.New("invalid command arguments")

// ErrUnsupportedCommand indicates we do not yet support the requested command.
var ErrUnsupportedCommand = errors.New("unsupported command")

// HelpText lists the supported commands.
const HelpText = "Commands:\n" +
	"/stock - stock overview\n" +
	"/lowstock - products to reorder\n" +
	"/rentals - rentals due or overdue\n" +
	"/sales [year] - sales for a year\n" +
	"/help - this list"

// ReportingAdapter defines the reporting functions required by the dispatcher.
type ReportingAdapter interface {
	StockSummary(ctx context.Context) (string, error)
	LowStockSummary(ctx context.Context) (string, error)
	RentalDigest(ctx context.Context, now time.Time) (string, error)
	SalesSummary(ctx context.Context, year int) (string, error)
}

// Dispatcher executes parsed commands and returns the reply text.
type Dispatcher interface {
	HandleCommand(ctx context.Context, cmd models.Command, sender string) (string, error)
}

// Service implements the Dispatcher interface.
type Service struct {
	reporting ReportingAdapter
	logger    *zap.Logger
	now       func() time.Time
}

// NewService constructs a command dispatcher.
func NewService(reporting ReportingAdapter, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{
		reporting: reporting,
		logger:    logger,
		now:       time.Now,
	}
}

// HandleCommand answers cmd with the matching report summary.
func (s *Service) HandleCommand(ctx context.Context, cmd models.Command, sender string) (string, error) {
	s.logger.Debug("dispatching command", zap.String("command", string(cmd.Type)), zap.String("sender", sender), zap.Strings("args", cmd.Args))

	switch cmd.Type {
	case models.CommandStock:
		return s.reporting.StockSummary(ctx)
	case models.CommandLowStock:
		return s.reporting.LowStockSummary(ctx)
	case models.CommandRentals:
		return s.reporting.RentalDigest(ctx, s.now())
	case models.CommandSales:
		year, err := parseYear(cmd.Args)
		if err != nil {
			return "", err
		}
		return s.reporting.SalesSummary(ctx, year)
	case models.CommandHelp:
		return HelpText, nil
	default:
		return "", fmt.Errorf("%w: %s", ErrUnsupportedCommand, cmd.Raw)
	}
}

// parseYear reads the optional year argument; zero means the current year.
func parseYear(args []string) (int, error) {
	if len(args) == 0 {
		return 0, nil
	}
	year, err := strconv.Atoi(args[0])
	if err != nil || year < 2000 || year > 2100 {
		return 0, fmt.Errorf("%w: year must look like 2024, got %q", ErrInvalidArguments, args[0])
	}
	return year, nil
}
