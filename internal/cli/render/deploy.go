package render

import (
	"fmt"
	"io"
	"math/big"
	"strings"
	"time"

	"github.com/credence0x/ctf-deploy/internal/domain"
	"github.com/credence0x/ctf-deploy/internal/domain/config"
	"github.com/credence0x/ctf-deploy/internal/domain/models"
	"github.com/credence0x/ctf-deploy/internal/usecase"
	"github.com/fatih/color"
	"github.com/jedib0t/go-pretty/v6/table"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var banner = []string{
	`   ____          _         `,
	`  |    \ ___ ___| |___ _ _ `,
	`  |  |  | -_| . | | . | | |`,
	`  |____/|___|  _|_|___|_  |`,
	`            |_|       |___|`,
}

var (
	bannerStyle  = color.New(color.FgRed)
	declareStyle = color.New(color.FgMagenta)
	deployStyle  = color.New(color.FgGreen)
	labelStyle   = color.New(color.Bold)
	mutedStyle   = color.New(color.FgHiBlack)
	failedStyle  = color.New(color.FgRed)
)

// DeployRenderer prints the progress and outcome of a challenge deployment
type DeployRenderer struct {
	out     io.Writer
	network *config.Network
	printer *message.Printer
}

// NewDeployRenderer creates a new deploy renderer
func NewDeployRenderer(out io.Writer) *DeployRenderer {
	return &DeployRenderer{
		out:     out,
		printer: message.NewPrinter(language.English),
	}
}

// PrintBanner prints the deploy banner
func (r *DeployRenderer) PrintBanner() {
	for _, line := range banner {
		fmt.Fprintln(r.out, bannerStyle.Sprint(line))
	}
	fmt.Fprintln(r.out)
}

// RenderNetwork prints the network the deployment talks to
func (r *DeployRenderer) RenderNetwork(network *config.Network) {
	r.network = network
	fmt.Fprintf(r.out, "%s %s %s\n",
		labelStyle.Sprint("Network:"),
		cases.Title(language.English).String(network.Name),
		mutedStyle.Sprint(network.RPCURL))
}

// RenderDeclaring announces a class declaration
func (r *DeployRenderer) RenderDeclaring(artifact *models.Artifact) {
	fmt.Fprintln(r.out, declareStyle.Sprintf("\nDeclaring %s ...", artifact.Name))
}

// RenderDeclaration prints the class hash and declaration transaction
func (r *DeployRenderer) RenderDeclaration(declaration *models.ClassDeclaration) {
	fmt.Fprintln(r.out, declareStyle.Sprint("- Class Hash: "), declaration.ClassHash.String())
	if declaration.AlreadyDeclared() {
		fmt.Fprintln(r.out, declareStyle.Sprint("- Tx Hash: "), mutedStyle.Sprint("Already declared"))
		return
	}
	fmt.Fprintln(r.out, declareStyle.Sprint("- Tx Hash: "), r.txURL(declaration.TxHash.String()))
}

// RenderDeploying announces a contract deployment
func (r *DeployRenderer) RenderDeploying(message string) {
	fmt.Fprintln(r.out, deployStyle.Sprintf("\n%s ...", message))
}

// RenderDeployed prints the deployment transaction and contract address
func (r *DeployRenderer) RenderDeployed(contract *models.DeployedContract) {
	fmt.Fprintln(r.out, deployStyle.Sprint("Tx hash: "), r.txURL(contract.TxHash.String()))
	fmt.Fprintln(r.out, deployStyle.Sprint("Contract Address: "), contract.Address.String())
	if r.network != nil && r.network.ExplorerURL != "" {
		fmt.Fprintln(r.out, deployStyle.Sprint("Explorer: "), r.network.ContractURL(contract.Address.String()))
	}
}

// RenderFunding prints the outcome of a prize mint
func (r *DeployRenderer) RenderFunding(funding *models.Funding) {
	amount := r.FormatAmount(funding.Amount)
	if !funding.Succeeded() {
		fmt.Fprintln(r.out, failedStyle.Sprintf("Mint of %s to %s failed", amount, funding.Recipient))
		return
	}
	fmt.Fprintf(r.out, "%s %s\n", deployStyle.Sprintf("Minted %s to %s:", amount, funding.Recipient), r.txURL(funding.TxHash.String()))
}

// RenderSummary prints the deployed contracts as a table
func (r *DeployRenderer) RenderSummary(result *usecase.DeployChallengeResult) {
	fmt.Fprintln(r.out)
	fmt.Fprintln(r.out, labelStyle.Sprintf("Deployed %d contracts on %s in %s",
		len(result.Contracts),
		cases.Title(language.English).String(result.Network.Name),
		result.Duration.Round(time.Second)))

	t := table.NewWriter()
	t.SetOutputMirror(r.out)
	t.SetStyle(table.StyleLight)
	t.AppendHeader(table.Row{"Contract", "Address", "Class Hash", "Prize"})

	for _, c := range result.Contracts {
		prize := ""
		for _, f := range result.Fundings {
			if f.Recipient != nil && f.Recipient.String() == c.Address.String() {
				prize = r.FormatAmount(f.Amount)
				if !f.Succeeded() {
					prize = failedStyle.Sprintf("%s (failed)", prize)
				}
			}
		}
		t.AppendRow(table.Row{c.Name, c.Address.String(), c.ClassHash.String(), prize})
	}
	t.Render()

	if failed := result.FailedFundings(); len(failed) > 0 {
		fmt.Fprintln(r.out, failedStyle.Sprintf("%d prize mint(s) failed, fund the stages manually", len(failed)))
	}
	if result.RecordPath != "" {
		fmt.Fprintf(r.out, "%s %s\n", mutedStyle.Sprint("Deployment record:"), result.RecordPath)
	}
}

// RenderPause prints the delay between stages
func (r *DeployRenderer) RenderPause(d time.Duration) {
	fmt.Fprintln(r.out, mutedStyle.Sprintf("Sleeping %s", d))
}

// FormatAmount renders a raw prize token amount in whole tokens
func (r *DeployRenderer) FormatAmount(amount *big.Int) string {
	if amount == nil {
		return "-"
	}
	scale := new(big.Int).Exp(big.NewInt(10), big.NewInt(domain.TokenDecimals), nil)
	whole, frac := new(big.Int).QuoRem(amount, scale, new(big.Int))

	var formatted string
	if whole.IsInt64() {
		formatted = r.printer.Sprintf("%d", whole.Int64())
	} else {
		formatted = whole.String()
	}
	if frac.Sign() != 0 {
		digits := fmt.Sprintf("%0*s", domain.TokenDecimals, frac.String())
		formatted += "." + strings.TrimRight(digits, "0")
	}
	return formatted + " " + domain.PrizeTokenSymbol
}

func (r *DeployRenderer) txURL(txHash string) string {
	if r.network == nil {
		return txHash
	}
	return r.network.TxURL(txHash)
}
