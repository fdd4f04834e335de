package creditcf

import (
	"bufio"
	"fmt"
	"io"
	"os"

	json "github.com/goccy/go-json"
)

// loanJSON is the wire shape of one NDJSON loan line (spec §6); pointer
// fields distinguish "absent" from "zero" so defaults can be applied.
type loanJSON struct {
	Balance     float64   `json:"balance"`
	Pd          float64   `json:"pd"`
	Lgd         float64   `json:"lgd"`
	LgdVariance *float64  `json:"lgdVariance"`
	R           *float64  `json:"r"`
	Weight      []float64 `json:"weight"`
	Num         *float64  `json:"num"`
}

// ReadParams reads and validates the parameters JSON file (spec §6, §7).
func ReadParams(filePath string) (Params, error) {
	buf, err := os.ReadFile(filePath)
	if err != nil {
		return Params{}, fmt.Errorf("creditcf: failed to read params file %s: %w", filePath, err)
	}
	var p Params
	if err := json.Unmarshal(buf, &p); err != nil {
		return Params{}, fmt.Errorf("creditcf: failed to unmarshal params JSON: %w", err)
	}
	if err := validateParams(p); err != nil {
		return Params{}, err
	}
	return p, nil
}

func validateParams(p Params) error {
	if p.XMin >= p.XMax {
		return fmt.Errorf("creditcf: grid misconfiguration: xMin (%v) must be < xMax (%v)", p.XMin, p.XMax)
	}
	if p.NumU <= 0 {
		return fmt.Errorf("creditcf: grid misconfiguration: numU must be > 0")
	}
	m := len(p.Alpha)
	if m == 0 {
		return fmt.Errorf("creditcf: malformed input: alpha must have at least one systemic factor")
	}
	if len(p.Sigma) != m || len(p.Rho) != m || len(p.Y0) != m {
		return fmt.Errorf("creditcf: malformed input: alpha, sigma, rho, y0 must have the same length")
	}
	return nil
}

// ReadLoans reads loans from an NDJSON file, one Loan per line,
// applying the defaults of spec §3/§6 (num=1, r=0, lgdVariance=0). The
// whole file is parsed and validated before the first loan is passed to
// yield, so malformed input fails (spec §7) before any accumulation
// starts. Loans are passed to yield in file order.
func ReadLoans(filePath string, numW int, yield func(Loan) error) error {
	f, err := os.Open(filePath)
	if err != nil {
		return fmt.Errorf("creditcf: failed to open loans file %s: %w", filePath, err)
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, 64*1024), 16*1024*1024)
	lineNo := 0
	var loans []Loan
	for scanner.Scan() {
		lineNo++
		line := scanner.Bytes()
		if len(line) == 0 {
			continue
		}
		var raw loanJSON
		if err := json.Unmarshal(line, &raw); err != nil {
			return fmt.Errorf("creditcf: malformed loan JSON at line %d: %w", lineNo, err)
		}
		loan, err := loanFromJSON(raw, numW)
		if err != nil {
			return fmt.Errorf("creditcf: line %d: %w", lineNo, err)
		}
		loans = append(loans, loan)
	}
	if err := scanner.Err(); err != nil && err != io.EOF {
		return fmt.Errorf("creditcf: failed to read loans file %s: %w", filePath, err)
	}
	for _, loan := range loans {
		if err := yield(loan); err != nil {
			return err
		}
	}
	return nil
}

func loanFromJSON(raw loanJSON, numW int) (Loan, error) {
	if raw.Balance < 0 {
		return Loan{}, fmt.Errorf("malformed input: negative balance %v", raw.Balance)
	}
	if raw.Pd < 0 || raw.Pd > 1 {
		return Loan{}, fmt.Errorf("malformed input: pd %v out of [0,1]", raw.Pd)
	}
	if len(raw.Weight) != numW {
		return Loan{}, fmt.Errorf("malformed input: weight length %d != numW %d", len(raw.Weight), numW)
	}

	l := Loan{
		Balance: raw.Balance,
		Pd:      raw.Pd,
		Lgd:     raw.Lgd,
		Weight:  raw.Weight,
		Num:     1,
	}
	if raw.Num != nil {
		l.Num = *raw.Num
	} else {
		LogWarning("loan missing num, defaulting to 1")
	}
	if raw.R != nil {
		l.R = *raw.R
	} else {
		LogWarning("loan missing r, defaulting to 0")
	}
	if raw.LgdVariance != nil {
		l.LgdVariance = *raw.LgdVariance
	} else {
		LogWarning("loan missing lgdVariance, defaulting to 0 (deterministic LGD)")
	}
	return l, nil
}
