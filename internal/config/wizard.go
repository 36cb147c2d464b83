package config

import (
	"fmt"

	"github.com/manifoldco/promptui"
)

// WizardAnswers carries the values collected by RunInitWizard. `eb init`
// applies Model to the new repository's config; Remote is not stored.
type WizardAnswers struct {
	Model  string
	Remote string
}

// RunInitWizard interactively asks for a default embedding model and a
// default remote name, used by `eb init` when run without -m/--model.
func RunInitWizard() (*WizardAnswers, error) {
	fmt.Println("Let's set up this embedding repository.")
	fmt.Println()

	modelPrompt := promptui.Prompt{
		Label:   "Default embedding model",
		Default: "text-embedding-3-small",
	}
	model, err := modelPrompt.Run()
	if err != nil {
		return nil, fmt.Errorf("model prompt: %w", err)
	}

	remotePrompt := promptui.Prompt{
		Label:   "Default remote name",
		Default: DefaultSettings().DefaultRemote,
	}
	remote, err := remotePrompt.Run()
	if err != nil {
		return nil, fmt.Errorf("remote prompt: %w", err)
	}

	return &WizardAnswers{Model: model, Remote: remote}, nil
}
