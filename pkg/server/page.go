package server

// widgetJS is the one-tag embed bootstrap: it injects the widget page as a
// floating iframe and positions it from the widget's applied state.
var widgetJS = `(function(){
  var script=document.currentScript;
  var origin=new URL(script.src).origin;
  var frame=document.createElement("iframe");
  frame.src=origin+"/widget";
  frame.title="Chat widget";
  frame.style.cssText="position:fixed;bottom:20px;right:20px;width:360px;height:520px;"+
    "max-width:calc(100vw - 40px);max-height:calc(100vh - 40px);"+
    "border:none;border-radius:14px;box-shadow:0 8px 30px rgba(0,0,0,.18);z-index:2147483000;";
  function place(position){
    if(position==="bottom-left"){frame.style.left="20px";frame.style.right="auto"}
    else{frame.style.right="20px";frame.style.left="auto"}
  }
  fetch(origin+"/widget/state").then(function(r){return r.json()})
    .then(function(s){place(s.position)}).catch(function(){});
  document.body.appendChild(frame);
})();`

// widgetHTML is the embeddable chat page. Colors are CSS variables that the
// websocket "palette" frames rewrite at runtime, so a dashboard theme change
// restyles every open page without a reload.
var widgetHTML = `<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<meta name="viewport" content="width=device-width,initial-scale=1">
<title>Chat</title>
<style>
:root{
  --primary:#3b82f6;--primary-dark:#2f68c5;--secondary:#155cd0;
  --background:#ffffff;--text:#2d3748;--border:#ebebeb;
  --user-bg:#3b82f6;--bot-bg:#cee0fd;--header-bg:#3b82f6;--header-text:#ffffff;
}
*{box-sizing:border-box;margin:0;padding:0}
html,body{height:100%}
body{
  font-family:system-ui,-apple-system,sans-serif;
  background:var(--background);color:var(--text);
  display:flex;flex-direction:column;overflow:hidden;
}
#header{
  padding:14px 18px;background:var(--header-bg);color:var(--header-text);
  font-size:15px;font-weight:600;flex-shrink:0;
}
#messages{flex:1;overflow-y:auto;padding:16px;display:flex;flex-direction:column;gap:10px}
.msg{max-width:78%;padding:10px 14px;border-radius:14px;font-size:14px;line-height:1.5;white-space:pre-wrap}
.msg.user{align-self:flex-end;background:var(--user-bg);color:var(--header-text);border-bottom-right-radius:4px}
.msg.bot{align-self:flex-start;background:var(--bot-bg);color:var(--text);border-bottom-left-radius:4px}
#notice{padding:24px;text-align:center;font-size:13px;color:var(--text);opacity:.7;display:none}
#input-area{display:flex;gap:8px;padding:12px;border-top:1px solid var(--border);flex-shrink:0}
#input{
  flex:1;padding:10px 14px;font-size:14px;font-family:inherit;
  border:1px solid var(--border);border-radius:10px;outline:none;
  background:var(--background);color:var(--text);
}
#input:focus{border-color:var(--primary)}
#input:disabled{opacity:.5}
#send{
  padding:10px 18px;font-size:14px;font-weight:600;font-family:inherit;
  background:var(--primary);color:var(--header-text);
  border:none;border-radius:10px;cursor:pointer;
}
#send:hover{background:var(--primary-dark)}
#send:disabled{opacity:.4;cursor:not-allowed}
</style>
</head>
<body>
<div id="header">Chat</div>
<div id="messages"></div>
<div id="notice"></div>
<div id="input-area">
  <input id="input" type="text" placeholder="Type your message...">
  <button id="send">Send</button>
</div>
<script>
const headerEl=document.getElementById("header"),
      msgsEl=document.getElementById("messages"),
      noticeEl=document.getElementById("notice"),
      input=document.getElementById("input"),
      btn=document.getElementById("send");
const paletteVars={
  primary:"--primary",primaryDark:"--primary-dark",secondary:"--secondary",
  background:"--background",text:"--text",border:"--border",
  userBg:"--user-bg",botBg:"--bot-bg",headerBg:"--header-bg",headerText:"--header-text"
};
function addMsg(role,content){
  const el=document.createElement("div");
  el.className="msg "+role;el.textContent=content;
  msgsEl.appendChild(el);msgsEl.scrollTop=msgsEl.scrollHeight;
}
function setNotice(text){
  noticeEl.textContent=text;
  noticeEl.style.display=text?"block":"none";
}
function setInput(on){input.disabled=!on;btn.disabled=!on}
function applyPalette(p){
  for(const k in paletteVars){
    if(p[k])document.documentElement.style.setProperty(paletteVars[k],p[k]);
  }
}
function handleFrame(f){
  switch(f.type){
  case"title":headerEl.textContent=f.payload;break;
  case"placeholder":input.placeholder=f.payload;break;
  case"position":document.body.dataset.position=f.payload;break;
  case"input":setInput(f.payload);setNotice("");break;
  case"empty":setNotice("No content has been configured for this chat yet.");break;
  case"invalid-key":setNotice("This chat is unavailable: the API key is not valid.");setInput(false);break;
  case"palette":applyPalette(f.payload);break;
  case"message":if(f.payload.role==="bot")addMsg("bot",f.payload.content);break;
  }
}
let ws;
function connect(){
  ws=new WebSocket((location.protocol==="https:"?"wss://":"ws://")+location.host+"/widget/ws");
  ws.onmessage=e=>handleFrame(JSON.parse(e.data));
  ws.onclose=()=>setTimeout(connect,2000);
}
function signal(type){if(ws&&ws.readyState===WebSocket.OPEN)ws.send(JSON.stringify({type}))}
document.addEventListener("visibilitychange",()=>{if(!document.hidden)signal("visible")});
window.addEventListener("focus",()=>signal("focus"));
async function bootstrap(){
  const r=await fetch("/widget/state");
  if(!r.ok)return;
  const s=await r.json();
  if(s.title)headerEl.textContent=s.title;
  if(s.placeholder)input.placeholder=s.placeholder;
  if(s.palette)applyPalette(s.palette);
  setInput(s.hasContent);
  if(!s.hasContent)setNotice("No content has been configured for this chat yet.");
  for(const m of s.history||[])addMsg(m.role,m.content);
}
async function send(){
  const m=input.value.trim();if(!m)return;
  input.value="";addMsg("user",m);
  const r=await fetch("/widget/send",{method:"POST",headers:{"Content-Type":"application/json"},body:JSON.stringify({message:m})});
  if(!r.ok){const d=await r.json().catch(()=>({}));addMsg("bot",d.error||"Something went wrong.")}
}
btn.onclick=send;
input.onkeydown=e=>{if(e.key==="Enter")send()};
bootstrap();connect();
</script>
</body>
</html>`
