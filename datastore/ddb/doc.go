/*
Package ddb provides a DynamoDB implementation of the datastore.Executor interface.

The Executor translates compiled wire documents into aws-sdk-go-v2 inputs:

  - Query and Scan documents become QueryInput and ScanInput, with
    placeholder values marshalled through attributevalue
  - Save documents become PutItemInput
  - Update documents become UpdateItemInput with AttributeUpdates (PUT actions)
  - Delete documents become DeleteItemInput carrying the equality condition

Throttling and transient server errors are retried with linear backoff:

	exec := ddb.NewExecutor(client,
	    ddb.WithMaxRetries(5),
	    ddb.WithRetryBackoff(200*time.Millisecond),
	    ddb.WithLogger(logger),
	)

Connection settings come from the environment (AWS_REGION, AWS_ACCESS_KEY,
AWS_SECRET_KEY, DYNAMODB_ENDPOINT), optionally seeded from a .env file:

	cfg, err := ddb.LoadConfig()
	client, err := ddb.NewDynamoDBClient(ctx, cfg)
*/
package ddb
