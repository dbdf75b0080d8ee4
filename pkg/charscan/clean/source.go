// Package clean resolves findings to cleaning decisions and applies them
// to the live workbook.
package clean

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"charscan/pkg/charscan/models"
)

// DecisionSource supplies the resolution for one finding. Interactive
// prompting and pre-supplied bulk directives are two providers of the same
// contract.
type DecisionSource interface {
	GetDecision(f models.Finding) (models.CleaningDecision, error)
}

// Prompt is an interactive DecisionSource reading menu choices from in and
// writing the per-finding menu to out.
type Prompt struct {
	in  *bufio.Reader
	out io.Writer
}

// NewPrompt creates an interactive prompt, typically over stdin/stdout.
func NewPrompt(in io.Reader, out io.Writer) *Prompt {
	return &Prompt{in: bufio.NewReader(in), out: out}
}

// GetDecision shows the finding and the option menu, then reads a choice.
// Unrecognized input re-prompts rather than being coerced to any
// operation.
func (p *Prompt) GetDecision(f models.Finding) (models.CleaningDecision, error) {
	fmt.Fprintf(p.out, "\nCleaning cell %s!%s\n", f.Sheet, f.CellRef())
	fmt.Fprintf(p.out, "Current value: %s\n", f.CellValue)
	fmt.Fprintf(p.out, "Problematic character: %s\n", f.HexCode())
	if f.Category == "Printable" {
		fmt.Fprintf(p.out, "Character: %q - %s\n", f.Char, f.Category)
	} else {
		fmt.Fprintf(p.out, "Character: %s\n", f.Category)
	}

	for {
		fmt.Fprint(p.out, "\nOptions:\n"+
			"1. Delete the character\n"+
			"2. Replace with custom text\n"+
			"3. Skip this cell\n"+
			"4. Skip all remaining cells\n"+
			"5. Delete ALL instances of this character in ALL cells\n"+
			"6. Replace ALL instances of this character in ALL cells\n"+
			"7. Delete ALL problematic characters (all types) in ALL cells\n"+
			"8. Replace ALL problematic characters (all types) in ALL cells\n")
		fmt.Fprint(p.out, "Choose an option (1-8): ")

		choice, err := p.readLine()
		if err != nil {
			return models.CleaningDecision{}, err
		}

		switch choice {
		case "1":
			return models.CleaningDecision{Scope: models.ScopeCell, Operation: models.OpDelete}, nil
		case "2":
			return p.replaceDecision(models.ScopeCell)
		case "3":
			return models.CleaningDecision{Operation: models.OpSkip}, nil
		case "4":
			return models.CleaningDecision{Operation: models.OpSkipAll}, nil
		case "5":
			return models.CleaningDecision{Scope: models.ScopeCharEverywhere, Operation: models.OpDelete}, nil
		case "6":
			return p.replaceDecision(models.ScopeCharEverywhere)
		case "7":
			return models.CleaningDecision{Scope: models.ScopeAllEverywhere, Operation: models.OpDelete}, nil
		case "8":
			return p.replaceDecision(models.ScopeAllEverywhere)
		default:
			fmt.Fprintf(p.out, "Invalid choice %q.\n", choice)
		}
	}
}

func (p *Prompt) replaceDecision(scope models.Scope) (models.CleaningDecision, error) {
	fmt.Fprint(p.out, "Enter replacement text: ")
	text, err := p.readLine()
	if err != nil {
		return models.CleaningDecision{}, err
	}
	return models.CleaningDecision{
		Scope:       scope,
		Operation:   models.OpReplace,
		Replacement: &text,
	}, nil
}

func (p *Prompt) readLine() (string, error) {
	line, err := p.in.ReadString('\n')
	if err != nil && line == "" {
		return "", err
	}
	return strings.TrimRight(line, "\r\n"), nil
}

// Directive is a non-interactive DecisionSource that resolves every
// finding with the same pre-supplied decision.
type Directive struct {
	decision models.CleaningDecision
}

// NewDirective validates and wraps a bulk decision. An invalid decision
// fails the bulk operation up front instead of being silently adjusted.
func NewDirective(d models.CleaningDecision) (*Directive, error) {
	if err := d.Validate(); err != nil {
		return nil, err
	}
	return &Directive{decision: d}, nil
}

// GetDecision returns the pre-supplied decision for any finding.
func (d *Directive) GetDecision(models.Finding) (models.CleaningDecision, error) {
	return d.decision, nil
}
