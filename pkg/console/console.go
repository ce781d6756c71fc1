package console

import (
	"fmt"

	"github.com/diillson/aws-cost-report-go/internal/shared/types"
	"github.com/fatih/color"
	"github.com/pterm/pterm"
)

// Console é uma implementação do ConsoleInterface.
type Console struct {
	noColor bool
}

// Option configura o Console.
type Option func(*Console)

// WithNoColor desliga cores e estilos, útil quando a saída é redirecionada.
func WithNoColor() Option {
	return func(c *Console) { c.noColor = true }
}

// NewConsole cria um novo Console.
func NewConsole(opts ...Option) *Console {
	c := &Console{}
	for _, opt := range opts {
		opt(c)
	}
	if c.noColor {
		pterm.DisableStyling()
		color.NoColor = true
	}
	return c
}

// Print imprime no console.
func (c *Console) Print(a ...interface{}) {
	fmt.Print(a...)
}

// Printf imprime uma string formatada no console.
func (c *Console) Printf(format string, a ...interface{}) {
	fmt.Printf(format, a...)
}

// Println imprime no console com uma nova linha.
func (c *Console) Println(a ...interface{}) {
	fmt.Println(a...)
}

// LogInfo registra uma mensagem de informação.
func (c *Console) LogInfo(format string, a ...interface{}) {
	pterm.Info.Printfln(format, a...)
}

// LogWarning registra uma mensagem de aviso.
func (c *Console) LogWarning(format string, a ...interface{}) {
	pterm.Warning.Printfln(format, a...)
}

// LogError registra uma mensagem de erro.
func (c *Console) LogError(format string, a ...interface{}) {
	pterm.Error.Printfln(format, a...)
}

// LogSuccess registra uma mensagem de sucesso.
func (c *Console) LogSuccess(format string, a ...interface{}) {
	pterm.Success.Printfln(format, a...)
}

// statusHandle é uma implementação do StatusHandle.
type statusHandle struct {
	spinner *pterm.SpinnerPrinter
}

// Status cria um spinner de status com a mensagem especificada.
// Sem cores o spinner vira uma linha de log simples.
func (c *Console) Status(message string) types.StatusHandle {
	if c.noColor {
		pterm.Info.Println(message)
		return &statusHandle{}
	}
	spinner, err := pterm.DefaultSpinner.WithRemoveWhenDone(true).Start(message)
	if err != nil {
		pterm.Info.Println(message)
		return &statusHandle{}
	}
	return &statusHandle{spinner: spinner}
}

// Cores usadas pelo banner.
var (
	BoldRed  = color.New(color.FgRed, color.Bold).SprintFunc()
	BoldBlue = color.New(color.FgBlue, color.Bold).SprintFunc()
)

// Update atualiza a mensagem de status.
func (h *statusHandle) Update(message string) {
	if h.spinner != nil {
		h.spinner.UpdateText(message)
	}
}

// Stop pára o spinner de status.
func (h *statusHandle) Stop() {
	if h.spinner != nil {
		_ = h.spinner.Stop()
		h.spinner = nil
	}
}

// Table é uma implementação do TableInterface.
type Table struct {
	columns []string
	rows    [][]string
}

// CreateTable cria uma nova tabela.
func (c *Console) CreateTable() types.TableInterface {
	return &Table{
		columns: []string{},
		rows:    [][]string{},
	}
}

// AddColumn adiciona uma coluna à tabela. As opções são ignoradas.
func (t *Table) AddColumn(name string, _ ...interface{}) {
	t.columns = append(t.columns, name)
}

// AddRow adiciona uma linha à tabela.
func (t *Table) AddRow(cells ...interface{}) {
	processedCells := make([]string, len(cells))
	for i, cell := range cells {
		processedCells[i] = fmt.Sprint(cell)
	}
	t.rows = append(t.rows, processedCells)
}

// Render renderiza a tabela como uma string.
func (t *Table) Render() string {
	tableData := pterm.TableData{t.columns}
	for _, row := range t.rows {
		tableData = append(tableData, row)
	}

	table := pterm.DefaultTable.
		WithHasHeader().
		WithBoxed().
		WithHeaderStyle(pterm.NewStyle(pterm.FgLightCyan)).
		WithData(tableData)

	renderedTable, _ := table.Srender()
	return renderedTable
}
