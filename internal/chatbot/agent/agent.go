/**
 * @description
 * The chat agent. Dispatch is a handful of substring checks over the
 * lowercased message:
 *   - "lister"          -> formatted list of beneficiaries
 *   - "virement(s) de"  -> the named beneficiary's transfers
 *   - "rib" / "rip"     -> RIB lookup for the named beneficiary
 *   - anything else     -> forwarded to the external LLM endpoint
 * MCP or LLM failures degrade to an apology string; the agent never errors
 * out toward the HTTP layer.
 */
package agent

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/d-sar/poc/internal/chatbot/mcpclient"
)

// MCPClient is the slice of the MCP relay the agent consumes.
type MCPClient interface {
	Beneficiaries(ctx context.Context) ([]mcpclient.Beneficiaire, error)
	VirementsOf(ctx context.Context, name string) ([]mcpclient.Virement, error)
}

// LLMClient answers messages the keyword dispatch does not recognize.
type LLMClient interface {
	Chat(ctx context.Context, userMessage string) (string, error)
}

// Agent dispatches chat messages to MCP data lookups or the LLM.
type Agent struct {
	mcp    MCPClient
	llm    LLMClient
	logger *slog.Logger
}

// New creates an Agent over the MCP relay and the LLM client.
func New(mcp MCPClient, llm LLMClient, logger *slog.Logger) *Agent {
	return &Agent{mcp: mcp, llm: llm, logger: logger}
}

// Reply produces the answer to one chat message.
func (a *Agent) Reply(ctx context.Context, message string) string {
	normalized := strings.ToLower(strings.TrimSpace(message))

	switch {
	case strings.Contains(normalized, "lister"):
		beneficiaires, err := a.mcp.Beneficiaries(ctx)
		if err != nil {
			a.logger.Warn("mcp beneficiary list failed", "error", err)
			return "Je n'arrive pas à joindre le service des bénéficiaires pour le moment."
		}
		return formatBeneficiaires(beneficiaires)

	case strings.Contains(normalized, "virement de"), strings.Contains(normalized, "virements de"):
		beneficiaires, err := a.mcp.Beneficiaries(ctx)
		if err != nil {
			a.logger.Warn("mcp beneficiary list failed", "error", err)
			return "Je n'arrive pas à joindre le service des bénéficiaires pour le moment."
		}
		return a.listVirements(ctx, beneficiaires, normalized)

	case strings.Contains(normalized, "rib"), strings.Contains(normalized, "rip"):
		beneficiaires, err := a.mcp.Beneficiaries(ctx)
		if err != nil {
			a.logger.Warn("mcp beneficiary list failed", "error", err)
			return "Je n'arrive pas à joindre le service des bénéficiaires pour le moment."
		}
		return findRib(beneficiaires, normalized)
	}

	reply, err := a.llm.Chat(ctx, message)
	if err != nil {
		a.logger.Warn("llm fallback failed", "error", err)
		return "Je n'ai pas pu obtenir de réponse."
	}
	return reply
}

// listVirements resolves the named beneficiary then asks the relay for their
// transfers.
func (a *Agent) listVirements(ctx context.Context, beneficiaires []mcpclient.Beneficiaire, message string) string {
	for _, b := range beneficiaires {
		if b.Nom == "" || !strings.Contains(message, strings.ToLower(b.Nom)) {
			continue
		}
		virements, err := a.mcp.VirementsOf(ctx, b.Nom)
		if err != nil {
			a.logger.Warn("mcp virement list failed", "beneficiaire", b.Nom, "error", err)
			return "Je n'arrive pas à joindre le service des virements pour le moment."
		}
		if len(virements) == 0 {
			return fmt.Sprintf("Aucun virement trouvé pour %s.", b.Nom)
		}
		var sb strings.Builder
		fmt.Fprintf(&sb, "Virements de %s:\n", b.Nom)
		for _, v := range virements {
			fmt.Fprintf(&sb, "Montant: %s, Type: %s, Statut: %s, Date: %s\n", v.Montant, v.Type, v.Statut, v.DateVirement)
		}
		return sb.String()
	}
	return "Aucun bénéficiaire trouvé avec ce nom."
}

// findRib scans the message for a known beneficiary name. Matching on the
// whole message keeps phrasings like "quel est le rib de martin" working
// without a grammar.
func findRib(beneficiaires []mcpclient.Beneficiaire, message string) string {
	for _, b := range beneficiaires {
		if b.Nom != "" && strings.Contains(message, strings.ToLower(b.Nom)) {
			return fmt.Sprintf("Le RIB de %s est : %s", b.Nom, b.Rib)
		}
	}
	return "Aucun bénéficiaire trouvé avec ce nom."
}

func formatBeneficiaires(beneficiaires []mcpclient.Beneficiaire) string {
	if len(beneficiaires) == 0 {
		return "Aucun bénéficiaire trouvé."
	}
	var sb strings.Builder
	sb.WriteString("Liste des bénéficiaires:\n")
	for _, b := range beneficiaires {
		fmt.Fprintf(&sb, "Nom: %s, Prénom: %s, RIB: %s, Type: %s\n", b.Nom, b.Prenom, b.Rib, b.Type)
	}
	return sb.String()
}
