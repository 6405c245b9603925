package pattern

import "github.com/Veraticus/cashflow/internal/model"

// DefaultRules returns the rules used when none are configured. Category ids
// refer to the default category set.
func DefaultRules() []Rule {
	income := model.TransactionTypeIncome
	expense := model.TransactionTypeExpense
	return []Rule{
		// Income
		{Name: "Salário", Pattern: `\b(salario|folha|pagto salario|proventos)\b`, Regex: true, Type: income, Category: "1", Priority: 100},
		{Name: "Rendimentos", Pattern: `\b(rendimento|rend pago|juros|dividendo|jcp)\b`, Regex: true, Type: income, Category: "3", Priority: 90},

		// Expenses
		{Name: "Aluguel", Pattern: `\b(aluguel|condominio|iptu)\b`, Regex: true, Type: expense, Category: "7", Priority: 80},
		{Name: "Contas", Pattern: `\b(enel|light|cemig|sabesp|copasa|comgas|vivo|claro|tim|oi fibra|net servicos)\b`, Regex: true, Type: expense, Category: "11", Priority: 70},
		{Name: "Transporte", Pattern: `\b(uber|99 ?app|99 ?pop|posto|shell|ipiranga|estacionamento|sem parar)\b`, Regex: true, Type: expense, Category: "6", Priority: 60},
		{Name: "Alimentação", Pattern: `\b(ifood|rappi|supermercado|mercado|padaria|restaurante|acougue|hortifruti)\b`, Regex: true, Type: expense, Category: "5", Priority: 60},
		{Name: "Saúde", Pattern: `\b(farmacia|drogaria|drogasil|raia|hospital|laboratorio|unimed)\b`, Regex: true, Type: expense, Category: "8", Priority: 60},
		{Name: "Educação", Pattern: `\b(escola|faculdade|curso|livraria|udemy)\b`, Regex: true, Type: expense, Category: "9", Priority: 50},
		{Name: "Lazer", Pattern: `\b(netflix|spotify|disney|cinema|ingresso|steam)\b`, Regex: true, Type: expense, Category: "10", Priority: 50},
		{Name: "Reserva", Pattern: `\b(aplicacao|poupanca|cdb|tesouro)\b`, Regex: true, Type: expense, Category: "12", ExpenseType: model.ExpenseTypeReserve, Priority: 40},
	}
}
