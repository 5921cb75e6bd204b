package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/ochairo/thirdparty/internal/domain-adapters/gateways"
)

type verifyOptions struct {
	signature string
	keyFiles  []string
	keysURL   string
	digest    string
}

func newVerifyCmd() *cobra.Command {
	opts := &verifyOptions{}

	cmd := &cobra.Command{
		Use:   "verify <file>",
		Short: "Verify the digest and signature of a license data file",
		Long: `Verify a license data file (override, merge or license database file)
before publishing it to a license registry.

With keys, the detached signature defaults to <file>.asc.`,
		Example: `  # Verify a pinned digest
  thirdparty verify override-THIRD-PARTY.properties --digest sha256:3b0c...

  # Verify a detached signature
  thirdparty verify override-THIRD-PARTY.properties --key release-key.asc`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runVerify(cmd, args[0], opts)
		},
	}

	cmd.Flags().StringVar(&opts.signature, "signature", "", "Detached signature file (default <file>.asc)")
	cmd.Flags().StringArrayVar(&opts.keyFiles, "key", nil, "Armored or binary public key file (repeatable)")
	cmd.Flags().StringVar(&opts.keysURL, "keys-url", "", "URL of a KEYS file")
	cmd.Flags().StringVar(&opts.digest, "digest", "", "Expected digest, sha256:<hex>")
	return cmd
}

func runVerify(cmd *cobra.Command, filePath string, opts *verifyOptions) error {
	if opts.digest == "" && len(opts.keyFiles) == 0 && opts.keysURL == "" {
		return fmt.Errorf("nothing to verify: use --digest, --key or --keys-url")
	}

	//nolint:gosec // G304: filePath is the file the user asked to verify
	data, err := os.ReadFile(filePath)
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", filePath, err)
	}

	out := cmd.OutOrStdout()
	checksums := gateways.NewChecksumVerifier()
	fmt.Fprintf(out, "🔍 Verifying %s\n", filepath.Base(filePath))
	fmt.Fprintf(out, "  digest: %s\n", checksums.Digest(data))

	if opts.digest != "" {
		if err := checksums.VerifyDigest(data, opts.digest); err != nil {
			fmt.Fprintf(out, "❌ Digest verification FAILED\n")
			return err
		}
		fmt.Fprintf(out, "✅ Digest verified\n")
	}

	verifier, err := newSignatureVerifier(cmd.Context(), opts.keyFiles, opts.keysURL)
	if err != nil {
		return err
	}
	if verifier == nil {
		return nil
	}

	sigPath := opts.signature
	if sigPath == "" {
		sigPath = filePath + ".asc"
	}
	//nolint:gosec // G304: sigPath is given on the command line or next to the verified file
	sig, err := os.ReadFile(sigPath)
	if err != nil {
		return fmt.Errorf("failed to read signature: %w", err)
	}
	if err := verifier.VerifyDetached(data, sig); err != nil {
		fmt.Fprintf(out, "❌ Signature verification FAILED\n")
		return err
	}
	fmt.Fprintf(out, "✅ Signature verified (%d key(s) in keyring)\n", verifier.KeyringSize())
	return nil
}
