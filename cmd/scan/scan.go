// Package scan handles verification starting from a screenshot image
package scan

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"merxylab/kpay-verify/cmd/common"
	"merxylab/kpay-verify/cmd/root"
	"merxylab/kpay-verify/internal/logging"
	"merxylab/kpay-verify/internal/ocr"
)

// Cmd represents the scan command
var Cmd = &cobra.Command{
	Use:   "scan",
	Short: "Recognize and verify a payment screenshot",
	Long: `Run OCR on a screenshot image, then verify the recognized text against
the configured policy. A copy of the screenshot is kept under the
artifacts directory for audit.`,
	Run: scanFunc,
}

func scanFunc(cmd *cobra.Command, args []string) {
	if root.SharedFlags.Input == "" {
		root.Log.Fatal("scan requires --input pointing at a screenshot image")
	}

	image, err := os.ReadFile(root.SharedFlags.Input)
	if err != nil {
		root.Log.WithError(err).Fatal("Failed to read screenshot")
	}

	setup, err := common.NewSetup(root.SharedFlags.PolicyFile, root.SharedFlags.LedgerPath, root.Log)
	if err != nil {
		root.Log.WithError(err).Fatal("Failed to initialize")
	}
	defer setup.Close()

	ctx := context.Background()

	recognizer, err := ocr.NewGemini(ctx, setup.Config.AI.APIKey, setup.Config.AI.Model)
	if err != nil {
		root.Log.WithError(err).Fatal("Failed to create recognizer")
	}
	defer func() {
		if err := recognizer.Close(); err != nil {
			root.Log.WithError(err).Warn("Failed to close recognizer")
		}
	}()

	rawText, err := ocr.RecognizeWithFallback(ctx, recognizer, image)
	if err != nil {
		root.Log.WithError(err).Fatal("Recognition failed")
	}

	if path, err := storeArtifact(setup.Config.Artifacts.Directory, root.SharedFlags.Input, image); err != nil {
		setup.Logger.WithError(err).Warn("Failed to store screenshot artifact")
	} else {
		setup.Logger.WithField(logging.FieldFile, path).Debug("Screenshot artifact stored")
	}

	err = common.RunVerification(ctx, setup, rawText,
		root.SharedFlags.UserID, root.SharedFlags.Username)
	if err != nil {
		root.Log.WithError(err).Fatal("Verification failed")
	}
}

// storeArtifact keeps a copy of the screenshot under the artifacts
// directory with a collision-free name.
func storeArtifact(dir, original string, image []byte) (string, error) {
	if err := os.MkdirAll(dir, 0750); err != nil {
		return "", err
	}
	ext := filepath.Ext(original)
	if ext == "" {
		ext = ".png"
	}
	name := fmt.Sprintf("%s_%s%s", time.Now().UTC().Format("20060102_150405"), uuid.NewString(), ext)
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, image, 0640); err != nil {
		return "", err
	}
	return path, nil
}
