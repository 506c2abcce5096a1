// Package narrative produces the free-text sales diagnostic through a fallback chain
// of generators.
package narrative

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/jonathan/sales-diagnostic/internal/prompts"
	"github.com/jonathan/sales-diagnostic/internal/types"
)

const notProvided = "Non renseigné"

// BuildPrompt renders the analysis template stored under key for the given answers.
func BuildPrompt(key string, a types.AnswerRecord) (string, error) {
	tmpl, err := prompts.Analysis(key)
	if err != nil {
		return "", err
	}
	return prompts.Format(tmpl, map[string]string{
		"ProspectData": ProspectData(a),
	}), nil
}

// StaticText renders the canned narrative used when no model is reachable.
func StaticText(a types.AnswerRecord) (string, error) {
	tmpl, err := prompts.Analysis(prompts.KeyStaticFallback)
	if err != nil {
		return "", err
	}
	return prompts.Format(tmpl, map[string]string{
		"LeadsVolume": number(a.LeadsVolume),
		"ClosingRate": number(a.ClosingRate),
	}), nil
}

// ProspectData is the data block embedded in analysis prompts.
func ProspectData(a types.AnswerRecord) string {
	cac := notProvided
	ratio := "N/A"
	if a.HasCAC() {
		cac = number(*a.CAC) + "€"
		if a.AverageDeal > 0 {
			ratio = strconv.Itoa(int(math.Round(*a.CAC/a.AverageDeal*100))) + "%"
		}
	}
	crm := string(a.CRMUsage)
	if crm == "" {
		crm = notProvided
	}

	lines := []string{
		fmt.Sprintf("- Volume de Leads : %s/mois (Inbound)", number(a.LeadsVolume)),
		fmt.Sprintf("- Taux de qualification : %s%%", number(a.QualifiedRate)),
		fmt.Sprintf("- Volume Outbound : %s contacts/semaine", number(a.OutboundVolume)),
		fmt.Sprintf("- Taux de réponse Outbound : %s%%", number(a.ResponseRate)),
		fmt.Sprintf("- Système de suivi Outbound : %s", yesNo(a.HasFollowUpSystem())),
		fmt.Sprintf("- Taux de présence RDV (Show-up) : %s%%", number(a.ShowUpRate)),
		fmt.Sprintf("- Taux de Closing : %s%%", number(a.ClosingRate)),
		fmt.Sprintf("- Panier moyen : %s€", number(a.AverageDeal)),
		fmt.Sprintf("- Coût Acquisition Client (CAC) : %s", cac),
		fmt.Sprintf("- Ratio CAC/Panier : %s (Cible < 25%%)", ratio),
		fmt.Sprintf("- Nombre de commerciaux : %s", number(a.SalesReps)),
		fmt.Sprintf("- Utilisation CRM : %s", crm),
		fmt.Sprintf("- Playbook de vente : %s", yesNo(a.HasPlaybook())),
		fmt.Sprintf("- Pilotage (Dashboards) : %s", yesNo(a.HasDashboards())),
	}
	return strings.Join(lines, "\n")
}

func number(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func yesNo(b bool) string {
	if b {
		return "Oui"
	}
	return "Non"
}
