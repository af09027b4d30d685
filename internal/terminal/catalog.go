package terminal

import "fmt"

// Program is one entry of the help catalog
type Program struct {
	Name        string
	Usage       string
	Description string
}

// Programs lists every command the interpreter understands, in help order
var Programs = []Program{
	{Name: "help", Usage: "help", Description: "Displays this list of programs"},
	{Name: "ask", Usage: `ask("question")`, Description: "Ask a question to the Oracle"},
	{Name: "clear", Usage: "clear", Description: "Clears the console screen"},
	{Name: "whoami", Usage: "whoami", Description: "Reveals your current designation"},
	{Name: "wake_up", Usage: "wake_up", Description: "Sends a message into the Matrix"},
	{Name: "set_theme", Usage: "set_theme(theme)", Description: "Changes color scheme (amber, sentinel_blue)"},
	{Name: "alias", Usage: "alias(new, old)", Description: "Creates a command shortcut"},
	{Name: "history", Usage: "history", Description: "Lists the commands entered this session"},
	{Name: "generate_key", Usage: "generate_key(..)", Description: "Creates a secure password (e.g. length:24)"},
	{Name: "process_data", Usage: "process_data(..)", Description: "Hashes or encodes text (e.g. encode:base64)"},
	{Name: "find_exit", Usage: "find_exit(URL)", Description: "Summarizes a web page"},
	{Name: "generate_code", Usage: "generate_code(..)", Description: `Writes a code snippet (e.g. lang:"py",..)`},
	{Name: "fabricate_data", Usage: "fabricate_data(..)", Description: "Generates mock data (e.g. count:3, schema:{})"},
}

func (p Program) helpLine() string {
	return fmt.Sprintf("  %-22s - %s", p.Usage, p.Description)
}
