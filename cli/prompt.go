// Copyright (C) 2023, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package cli

import (
	"fmt"
	"strings"

	"github.com/manifoldco/promptui"

	"github.com/ava-labs/countervm/codec"
	"github.com/ava-labs/countervm/utils"
)

func validateBool(input string) error {
	if len(input) == 0 {
		return ErrInputEmpty
	}
	lower := strings.ToLower(input)
	if lower == "y" || lower == "n" {
		return nil
	}
	return ErrInvalidChoice
}

func PromptBool(label string) (bool, error) {
	promptText := promptui.Prompt{
		Label:    fmt.Sprintf("%s (y/n)", label),
		Validate: validateBool,
	}
	rawContinue, err := promptText.Run()
	if err != nil {
		return false, err
	}
	return strings.ToLower(rawContinue) == "y", nil
}

// ConfirmOverwrite asks before replacing the file at [path]. [force] skips
// the prompt.
func ConfirmOverwrite(path string, force bool) error {
	if force {
		return nil
	}
	utils.Outf("{{yellow}}%s already exists{{/}}\n", path)
	overwrite, err := PromptBool("overwrite")
	if err != nil {
		return err
	}
	if !overwrite {
		utils.Outf("{{red}}exiting...{{/}}\n")
		return ErrAborted
	}
	return nil
}

func ParseAddress(input string) (codec.Address, error) {
	if len(input) == 0 {
		return codec.EmptyAddress, ErrInputEmpty
	}
	return codec.ToAddress(strings.TrimSpace(input))
}

func PromptAddress(label string) (codec.Address, error) {
	promptText := promptui.Prompt{
		Label: label,
		Validate: func(input string) error {
			_, err := ParseAddress(input)
			return err
		},
	}
	rawAddress, err := promptText.Run()
	if err != nil {
		return codec.EmptyAddress, err
	}
	return ParseAddress(rawAddress)
}

// AddressArg returns the address in [args] or prompts for one.
func AddressArg(label string, args []string) (codec.Address, error) {
	if len(args) > 0 {
		return ParseAddress(args[0])
	}
	return PromptAddress(label)
}
