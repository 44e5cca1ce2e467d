package convert

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"fjacquet/icompta-ledger/cmd/root"
	"fjacquet/icompta-ledger/internal/parsererror"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const export = "Date,Catégorie,Type,Numéro,Banque,Tiers,Montant,Solde,Statut,Projet,Commentaire\n" +
	"2016-01-05,Alimentation,,,,Market,\"-45,30\",,,,\n" +
	"2016-02-25,Revenus:Salaire,,,,Employeur,3500,,,,février\n"

func setup(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Chdir(dir)
	t.Setenv("HOME", t.TempDir())

	orig := root.AppConfig
	t.Cleanup(func() { root.AppConfig = orig })
	root.AppConfig = nil

	input := filepath.Join(dir, "comptes.csv")
	require.NoError(t, os.WriteFile(input, []byte(export), 0644))
	return input
}

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := NewCommand()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestConvertCommand_Metadata(t *testing.T) {
	assert.Equal(t, "convert <input> <account>", Cmd.Use)
	assert.Contains(t, Cmd.Short, "ledger file")
	assert.Contains(t, Cmd.Long, "Example")
	assert.NotNil(t, Cmd.RunE)

	for flag, shorthand := range map[string]string{"currency": "c", "output": "o", "verbose": "v"} {
		f := Cmd.Flags().Lookup(flag)
		require.NotNil(t, f, flag)
		assert.Equal(t, shorthand, f.Shorthand)
	}
	for _, flag := range []string{"encoding", "skip-header", "no-header", "strict", "rules", "mode", "root"} {
		assert.NotNil(t, Cmd.Flags().Lookup(flag), flag)
	}
}

func TestConvertCommand_DefaultOutput(t *testing.T) {
	input := setup(t)

	out, err := execute(t, input, "Liabilities:MasterCard")
	require.NoError(t, err)

	expected := strings.TrimSuffix(input, ".csv") + ".ledger"
	assert.Equal(t, "Conversion has been successfully written to \""+expected+"\"\n", out)

	data, err := os.ReadFile(expected)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(data), "; -*- ledger -*-\n\nbucket Liabilities:MasterCard\n"))
	assert.Contains(t, string(data), "    Expenses:Alimentation"+strings.Repeat(" ", 30)+"$ 45.30\n")
	assert.Contains(t, string(data), "    ; février\n")
	assert.Contains(t, string(data), "    Income:Salaire\n")
}

func TestConvertCommand_Flags(t *testing.T) {
	input := setup(t)
	output := filepath.Join(t.TempDir(), "out.ledger")

	_, err := execute(t, input, "Assets:Checking", "-c", "CAD", "-o", output, "--no-header", "--mode", "prefixed", "--root", "Budget")
	require.NoError(t, err)

	data, err := os.ReadFile(output)
	require.NoError(t, err)
	text := string(data)
	assert.True(t, strings.HasPrefix(text, "\n2016-01-05 * Market\n"))
	assert.Contains(t, text, "    Expenses:Budget:Alimentation")
	assert.Contains(t, text, "45.30 CAD\n")
	assert.Contains(t, text, "    Income:Budget:Salaire\n")
}

func TestConvertCommand_MissingInput(t *testing.T) {
	setup(t)

	_, err := execute(t, "missing.csv", "Assets:Checking")
	require.Error(t, err)

	var cfgErr *parsererror.ConfigurationError
	require.True(t, errors.As(err, &cfgErr))
	assert.Equal(t, "input", cfgErr.Field)
	assert.NoFileExists(t, "missing.ledger")
}

func TestConvertCommand_StrictFailsOnMalformedRow(t *testing.T) {
	input := setup(t)
	f, err := os.OpenFile(input, os.O_APPEND|os.O_WRONLY, 0644)
	require.NoError(t, err)
	_, err = f.WriteString("2016-03-01,Divers,,,,Broken,abc,,,,\n")
	require.NoError(t, err)
	require.NoError(t, f.Close())

	_, err = execute(t, input, "Assets:Checking", "--strict")
	require.Error(t, err)
	assert.True(t, parsererror.IsMalformedRow(err))
	assert.NoFileExists(t, strings.TrimSuffix(input, ".csv")+".ledger")

	_, err = execute(t, input, "Assets:Checking")
	require.NoError(t, err)
	assert.FileExists(t, strings.TrimSuffix(input, ".csv")+".ledger")
}

func TestConvertCommand_RequiresTwoArguments(t *testing.T) {
	setup(t)

	_, err := execute(t, "only-input.csv")
	assert.Error(t, err)
}
