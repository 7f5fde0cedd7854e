package main

import (
	"fmt"

	"github.com/fwojciec/tagscrape/bcrypt"
)

// Run executes the hash-password command.
func (c *HashPasswordCmd) Run(deps *Dependencies) error {
	hash, err := bcrypt.HashPassword(c.Password)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}
	fmt.Fprintln(deps.Stdout, hash)
	return nil
}
