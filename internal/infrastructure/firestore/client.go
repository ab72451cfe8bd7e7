package firestore

import (
	"context"
	"fmt"
	"os"

	"cloud.google.com/go/firestore"
	"go.uber.org/zap"
	"google.golang.org/api/option"
)

type FirestoreClient struct {
	client *firestore.Client
}

// NewFirestoreClient はFirestoreクライアントを作成する
// Cloud Run環境ではデフォルト認証、ローカルでは認証ファイルがあればそれを使用する
func NewFirestoreClient(ctx context.Context, projectID string, logger *zap.Logger) (*FirestoreClient, error) {
	var opts []option.ClientOption

	isCloudRun := os.Getenv("K_SERVICE") != ""
	if !isCloudRun {
		credentialsFile := os.Getenv("GOOGLE_APPLICATION_CREDENTIALS")
		if credentialsFile == "" {
			credentialsFile = "safehelp-firestore-key.json"
		}

		if _, err := os.Stat(credentialsFile); err != nil {
			logger.Warn("credentials file not found, using default authentication",
				zap.String("credentials_file", credentialsFile))
		} else {
			logger.Info("using credentials file", zap.String("credentials_file", credentialsFile))
			opts = append(opts, option.WithCredentialsFile(credentialsFile))
		}
	}

	client, err := firestore.NewClient(ctx, projectID, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create Firestore client: %w", err)
	}
	logger.Info("firestore client initialized",
		zap.String("project_id", projectID), zap.Bool("cloud_run", isCloudRun))

	return &FirestoreClient{client: client}, nil
}

func (fc *FirestoreClient) Close() error {
	return fc.client.Close()
}

func (fc *FirestoreClient) GetClient() *firestore.Client {
	return fc.client
}
