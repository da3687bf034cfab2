package models

import "strings"

// CommandType enumerates the WhatsApp commands operators can send.
type CommandType string

const (
	CommandStock    CommandType = "stock"
	CommandLowStock CommandType = "lowstock"
	CommandRentals  CommandType = "rentals"
	CommandSales    CommandType = "sales"
	CommandHelp     CommandType = "help"
	CommandUnknown  CommandType = "unknown"
)

// Command represents a parsed instruction extracted from WhatsApp text.
type Command struct {
	Type CommandType
	Raw  string
	Args []string
}

// ParseCommand derives a Command instance from free-form text messages.
func ParseCommand(message string) Command {
	normalized := strings.TrimSpace(strings.ToLower(message))
	cmd := Command{Raw: message, Type: CommandUnknown}

	tokens := strings.Fields(normalized)
	if len(tokens) == 0 {
		return cmd
	}

	head := strings.TrimPrefix(tokens[0], "/")
	switch head {
	case string(CommandStock):
		cmd.Type = CommandStock
	case string(CommandLowStock), "low":
		cmd.Type = CommandLowStock
	case string(CommandRentals), "rental":
		cmd.Type = CommandRentals
	case string(CommandSales):
		cmd.Type = CommandSales
	case string(CommandHelp), "?":
		cmd.Type = CommandHelp
	}

	if len(tokens) > 1 {
		cmd.Args = tokens[1:]
	}

	return cmd
}
