package transport

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/they4kman/gosweep/game"
)

const DefaultTimeout = 10 * time.Second

// Client plays against a remote authority. It holds no board, only the token
// of the current session. Calls must not overlap.
type Client struct {
	baseURL string
	userID  string
	http    *http.Client
	token   string
	log     logrus.FieldLogger
}

func NewClient(baseURL, userID string, timeout time.Duration, log logrus.FieldLogger) *Client {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &Client{
		baseURL: baseURL,
		userID:  userID,
		http:    &http.Client{Timeout: timeout},
		log:     log,
	}
}

// Token returns the token of the current session, empty before Init
func (client *Client) Token() string {
	return client.token
}

func (client *Client) Init(ctx context.Context, size, numMines int) error {
	// The previous session is gone whether or not the new one starts
	client.token = ""

	var response InitResponse
	err := client.do(ctx, requestInit, url.Values{
		paramSize:   {strconv.Itoa(size)},
		paramMines:  {strconv.Itoa(numMines)},
		paramUserID: {client.userID},
	}, &response)
	if err != nil {
		return err
	}
	if response.Token == "" {
		return &Error{Op: requestInit, Err: errors.New("authority sent no token")}
	}

	client.token = response.Token
	client.log.WithFields(logrus.Fields{
		"size":  size,
		"mines": numMines,
	}).Debug("remote game started")
	return nil
}

func (client *Client) Sweep(ctx context.Context, x, y int) (*game.SweepResult, error) {
	if client.token == "" {
		return nil, errors.Wrap(game.ErrSessionTerminal, "no game started")
	}

	var answer sweepAnswer
	err := client.do(ctx, requestSweep, url.Values{
		paramToken: {client.token},
		paramX:     {strconv.Itoa(x)},
		paramY:     {strconv.Itoa(y)},
	}, &answer)
	if err != nil {
		return nil, err
	}

	result, err := answer.result()
	if err != nil {
		return nil, &Error{Op: requestSweep, StatusCode: http.StatusOK, Err: err}
	}
	return result, nil
}

func (client *Client) do(ctx context.Context, request string, params url.Values, out interface{}) error {
	params.Set(paramRequest, request)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, client.baseURL+"?"+params.Encode(), nil)
	if err != nil {
		return &Error{Op: request, Err: err}
	}

	resp, err := client.http.Do(req)
	if err != nil {
		return &Error{Op: request, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return client.decodeError(request, resp)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return &Error{Op: request, StatusCode: resp.StatusCode, Err: errors.Wrap(err, "decode response")}
	}
	return nil
}

// decodeError turns an error answer into the game error it stands for, or a
// transport error when the answer says nothing about the game
func (client *Client) decodeError(request string, resp *http.Response) error {
	body, err := io.ReadAll(io.LimitReader(resp.Body, 4096))
	if err != nil {
		return &Error{Op: request, StatusCode: resp.StatusCode, Err: err}
	}

	var response ErrorResponse
	if err := json.Unmarshal(body, &response); err != nil || response.Error == "" {
		return &Error{Op: request, StatusCode: resp.StatusCode, Err: errors.Errorf("unexpected answer %q", body)}
	}

	if gameErr, ok := codeError(response.Error); ok {
		return errors.Wrapf(gameErr, "authority rejected %s", request)
	}
	return &Error{Op: request, StatusCode: resp.StatusCode, Err: errors.New(response.Error)}
}
