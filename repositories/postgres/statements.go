package postgres

import (
	"fmt"
	"regexp"
	"strings"
)

// Statement names
const (
	StatementLogin          = "auth.login"
	StatementMenuByEmployee = "menu.selectByEmployee"
)

// namedParam matches @name placeholders
var namedParam = regexp.MustCompile(`@([A-Za-z_][A-Za-z0-9_]*)`)

// Statement is a SQL query with named parameters compiled to positional ones
type Statement struct {
	Name   string
	SQL    string   // Source text with @name placeholders
	Query  string   // Text sent to the driver, with $n placeholders
	Params []string // Parameter name for each $n, in order
}

// CompileStatement rewrites @name placeholders to $1, $2, ...
// A name used more than once reuses the same position.
func CompileStatement(name, sql string) Statement {
	positions := make(map[string]int)
	var params []string

	query := namedParam.ReplaceAllStringFunc(sql, func(match string) string {
		param := match[1:]
		pos, ok := positions[param]
		if !ok {
			params = append(params, param)
			pos = len(params)
			positions[param] = pos
		}
		return fmt.Sprintf("$%d", pos)
	})

	return Statement{
		Name:   name,
		SQL:    sql,
		Query:  strings.TrimSpace(query),
		Params: params,
	}
}

// Args orders the named values for the driver. Every parameter must be present.
func (s Statement) Args(params map[string]any) ([]any, error) {
	args := make([]any, 0, len(s.Params))
	for _, name := range s.Params {
		value, ok := params[name]
		if !ok {
			return nil, fmt.Errorf("statement %s: missing parameter %q", s.Name, name)
		}
		args = append(args, value)
	}
	return args, nil
}

// Credential comparison happens in SQL; the stored value is compared as is.
const loginSQL = `
	SELECT e.ep_code   AS "epCode",
	       e.ep_name   AS "epName",
	       e.team_code AS "teamCode",
	       t.team_name AS "teamName",
	       e.busu_code AS "busuCode",
	       b.busu_name AS "busuName"
	  FROM employees e
	  LEFT JOIN teams t ON t.team_code = e.team_code
	  LEFT JOIN busus b ON b.busu_code = e.busu_code
	 WHERE e.ep_code = @epCode
	   AND e.pass_word = @passWord
	   AND e.use_yn = 'Y'
`

const menuByEmployeeSQL = `
	SELECT DISTINCT m.menu_id   AS "id",
	       m.title              AS "title",
	       m.path               AS "path",
	       m.parent_id          AS "parentId",
	       m.sort_order         AS "sort"
	  FROM menus m
	  JOIN menu_grants g ON g.menu_id = m.menu_id
	  JOIN employees e ON e.ep_code = @epCode
	 WHERE m.use_yn = 'Y'
	   AND (g.ep_code = e.ep_code OR g.team_code = e.team_code OR g.busu_code = e.busu_code)
	 ORDER BY m.sort_order, m.menu_id
`

// DefaultStatements returns the statements used by the repositories
func DefaultStatements() []Statement {
	return []Statement{
		CompileStatement(StatementLogin, loginSQL),
		CompileStatement(StatementMenuByEmployee, menuByEmployeeSQL),
	}
}
