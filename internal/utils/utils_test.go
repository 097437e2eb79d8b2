package utils

import (
    "testing"
    "time"

    "github.com/stretchr/testify/assert"
    "github.com/stretchr/testify/require"
    "golang.org/x/crypto/bcrypt"
)

func TestSessionToken_RoundTrip(t *testing.T) {
    st, err := NewSessionToken("secret", time.Hour)
    require.NoError(t, err)
    require.NotEmpty(t, st.SID)

    sid, err := ParseSession("secret", st.Token)
    require.NoError(t, err)
    assert.Equal(t, st.SID, sid)
}

func TestParseSession_Rejects(t *testing.T) {
    st, err := SignSession("secret", "abc", time.Hour)
    require.NoError(t, err)
    _, err = ParseSession("other", st.Token)
    assert.ErrorIs(t, err, ErrInvalidSession)

    expired, err := SignSession("secret", "abc", -time.Minute)
    require.NoError(t, err)
    _, err = ParseSession("secret", expired.Token)
    assert.ErrorIs(t, err, ErrInvalidSession)

    _, err = ParseSession("secret", "not-a-jwt")
    assert.ErrorIs(t, err, ErrInvalidSession)
}

func TestPasscode(t *testing.T) {
    h, err := HashPasscode("festival", bcrypt.MinCost)
    require.NoError(t, err)
    assert.True(t, VerifyPasscode(h, "festival"))
    assert.False(t, VerifyPasscode(h, "wrong"))
    assert.True(t, VerifyPasscode("", "anything"))
}
