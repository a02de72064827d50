package secrets

import (
	"errors"
	"fmt"
	"os"

	"mvdan.cc/sh/v3/syntax"
)

// Validate parses the secrets file with a POSIX shell grammar and checks that
// every statement is a plain assignment with no expansions, so sourcing it
// yields exactly the stored values.
func Validate(path string) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()

	file, err := syntax.NewParser().Parse(f, path)
	if err != nil {
		return fmt.Errorf("secrets file is not valid shell: %w", err)
	}

	var problems []error
	for _, stmt := range file.Stmts {
		if err := checkStmt(stmt); err != nil {
			pos := stmt.Pos()
			problems = append(problems, fmt.Errorf("line %d: %w", pos.Line(), err))
		}
	}
	return errors.Join(problems...)
}

func checkStmt(stmt *syntax.Stmt) error {
	switch cmd := stmt.Cmd.(type) {
	case *syntax.DeclClause:
		if cmd.Variant.Value != "export" {
			return fmt.Errorf("unexpected %q", cmd.Variant.Value)
		}
		for _, a := range cmd.Args {
			if a.Name == nil {
				return errors.New("export without a variable name")
			}
		}
	case *syntax.CallExpr:
		if len(cmd.Args) > 0 && cmd.Args[0].Lit() != "export" {
			return fmt.Errorf("unexpected command %q", cmd.Args[0].Lit())
		}
	default:
		return errors.New("unexpected statement")
	}
	return checkExpansions(stmt)
}

// checkExpansions rejects parameter, command, arithmetic and process
// substitutions anywhere in the statement.
func checkExpansions(stmt *syntax.Stmt) error {
	var found string
	syntax.Walk(stmt, func(node syntax.Node) bool {
		switch n := node.(type) {
		case *syntax.ParamExp:
			found = "$" + n.Param.Value
		case *syntax.CmdSubst:
			found = "command substitution"
		case *syntax.ArithmExp:
			found = "arithmetic expansion"
		case *syntax.ProcSubst:
			found = "process substitution"
		}
		return found == ""
	})
	if found != "" {
		return fmt.Errorf("value contains a shell expansion (%s)", found)
	}
	return nil
}
